package config

import "time"

// AppConfig holds the full application configuration for one traversal run
type AppConfig struct {
	StartURL           string           `yaml:"start_url,omitempty"`            // Article to start from
	SiteOrigin         string           `yaml:"site_origin,omitempty"`          // Scheme+host prepended to chosen links
	TargetPath         string           `yaml:"target_path,omitempty"`          // Path that ends the traversal
	LinkPrefix         string           `yaml:"link_prefix,omitempty"`          // Required href prefix for candidates
	SandboxSuffix      string           `yaml:"sandbox_suffix,omitempty"`       // Href suffix excluded from candidates
	ContentSelector    string           `yaml:"content_selector,omitempty"`     // CSS selector for the article body container
	MaxAttempts        int              `yaml:"max_attempts,omitempty"`         // Iteration budget for one run
	MinDelay           time.Duration    `yaml:"min_delay,omitempty"`            // Lower bound of the inter-request pause
	MaxDelay           time.Duration    `yaml:"max_delay,omitempty"`            // Upper bound of the inter-request pause
	UserAgent          string           `yaml:"user_agent,omitempty"`           // User-Agent header for page requests
	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"` // Shared HTTP client knobs
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	Timeout             time.Duration `yaml:"timeout,omitempty"`                 // Overall request timeout
	MaxIdleConns        int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout     time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	ForceAttemptHTTP2   *bool         `yaml:"force_attempt_http2,omitempty"`     // Tri-state: nil=default, true=force, false=disable
	DialerTimeout       time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive     time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}
