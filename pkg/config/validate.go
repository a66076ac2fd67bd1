package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/utils"
)

// Built-in defaults; a run with an empty config file walks English Wikipedia
const (
	DefaultStartURL        = "https://en.wikipedia.org/wiki/Sport"
	DefaultSiteOrigin      = "https://en.wikipedia.org"
	DefaultTargetPath      = "/wiki/Philosophy"
	DefaultLinkPrefix      = "/wiki/"
	DefaultSandboxSuffix   = "/sandbox"
	DefaultContentSelector = "div.mw-body-content"
	DefaultMaxAttempts     = 1000
	DefaultMinDelay        = 1 * time.Second
	DefaultMaxDelay        = 2 * time.Second
	DefaultUserAgent       = "wiki-philosophy-finder/1.0"
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// StartURL
	if c.StartURL == "" {
		c.StartURL = DefaultStartURL
	}
	parsed, parseErr := url.Parse(c.StartURL)
	if parseErr != nil || parsed.Scheme == "" || parsed.Host == "" {
		return warnings, fmt.Errorf("%w: start_url '%s' is not an absolute URL", utils.ErrConfigValidation, c.StartURL)
	}

	// SiteOrigin
	if c.SiteOrigin == "" {
		c.SiteOrigin = DefaultSiteOrigin
	}
	origin, parseErr := url.Parse(c.SiteOrigin)
	if parseErr != nil || origin.Scheme == "" || origin.Host == "" {
		return warnings, fmt.Errorf("%w: site_origin '%s' is not an absolute URL", utils.ErrConfigValidation, c.SiteOrigin)
	}
	if strings.HasSuffix(c.SiteOrigin, "/") {
		warnings = append(warnings, "site_origin has a trailing slash, trimming it")
		c.SiteOrigin = strings.TrimRight(c.SiteOrigin, "/")
	}

	// TargetPath
	if c.TargetPath == "" {
		c.TargetPath = DefaultTargetPath
	}
	if !strings.HasPrefix(c.TargetPath, "/") {
		warnings = append(warnings, "target_path should start with '/', prepending it")
		c.TargetPath = "/" + c.TargetPath
	}

	// LinkPrefix
	if c.LinkPrefix == "" {
		c.LinkPrefix = DefaultLinkPrefix
	}

	// SandboxSuffix
	if c.SandboxSuffix == "" {
		c.SandboxSuffix = DefaultSandboxSuffix
	}

	// ContentSelector
	if c.ContentSelector == "" {
		c.ContentSelector = DefaultContentSelector
	}

	// MaxAttempts
	if c.MaxAttempts < 0 {
		return warnings, fmt.Errorf("%w: max_attempts cannot be negative", utils.ErrConfigValidation)
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}

	// Pacing delays
	if c.MinDelay < 0 {
		warnings = append(warnings, "min_delay cannot be negative, setting to 0")
		c.MinDelay = 0
	}
	if c.MinDelay == 0 && c.MaxDelay == 0 {
		c.MinDelay = DefaultMinDelay
		c.MaxDelay = DefaultMaxDelay
	}
	if c.MaxDelay < c.MinDelay {
		return warnings, fmt.Errorf("%w: max_delay (%v) is less than min_delay (%v)", utils.ErrConfigValidation, c.MaxDelay, c.MinDelay)
	}

	// UserAgent
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	// HTTPClientSettings defaults
	c.validateHTTPClientSettings()

	return warnings, nil
}

// validateHTTPClientSettings applies defaults to HTTP client settings.
func (c *AppConfig) validateHTTPClientSettings() {
	h := &c.HTTPClientSettings
	if h.Timeout <= 0 {
		h.Timeout = 15 * time.Second
	}
	if h.MaxIdleConns <= 0 {
		h.MaxIdleConns = 10
	}
	if h.MaxIdleConnsPerHost <= 0 {
		h.MaxIdleConnsPerHost = 2
	}
	if h.IdleConnTimeout <= 0 {
		h.IdleConnTimeout = 90 * time.Second
	}
	if h.TLSHandshakeTimeout <= 0 {
		h.TLSHandshakeTimeout = 10 * time.Second
	}
	if h.DialerTimeout <= 0 {
		h.DialerTimeout = 15 * time.Second
	}
	if h.DialerKeepAlive <= 0 {
		h.DialerKeepAlive = 30 * time.Second
	}
}
