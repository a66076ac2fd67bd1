package fetch

import (
	"net"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/config"
)

// NewClient creates a new HTTP client based on the provided configuration.
func NewClient(cfg config.HTTPClientConfig, log *logrus.Logger) *http.Client {
	log.Debug("Initializing HTTP client...")

	// Create custom dialer with configured timeouts
	dialer := &net.Dialer{
		Timeout:   cfg.DialerTimeout,
		KeepAlive: cfg.DialerKeepAlive,
	}

	// Create custom transport using configured settings
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment, // Use system proxy settings
		DialContext:         dialer.DialContext,        // Use our custom dialer
		ForceAttemptHTTP2:   true,                      // Default to true unless explicitly disabled
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
	}
	// Handle explicit setting for ForceAttemptHTTP2 if provided
	if cfg.ForceAttemptHTTP2 != nil {
		transport.ForceAttemptHTTP2 = *cfg.ForceAttemptHTTP2
	}

	client := &http.Client{
		Timeout:   cfg.Timeout, // Use configured overall timeout
		Transport: transport,   // Use our custom transport
	}
	log.Debug("HTTP client initialized.")
	return client
}
