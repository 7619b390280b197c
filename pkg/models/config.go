package models

import (
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	DefaultCatalogURL   = "https://www.pluckier.co.uk/races.json"
	DefaultReloadCron   = "1 0 * * *"
	DefaultFetchTimeout = 10 // seconds

	CatalogFormatJSON = "json"
	CatalogFormatICal = "ical"
)

// Config holds application configuration read from the YAML config file.
// User preferences (melody, volume) live in the preference store instead.
type Config struct {
	CatalogURL           string `yaml:"catalog_url" json:"catalog_url"`                     // http(s) URL or local path
	CatalogFormat        string `yaml:"catalog_format" json:"catalog_format"`               // json or ical, inferred when empty
	FetchTimeoutSeconds  int    `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"` // catalog request timeout
	ReloadCron           string `yaml:"reload_cron" json:"reload_cron"`                     // catalog reload schedule, "-" disables
	DesktopNotifications bool   `yaml:"desktop_notifications" json:"desktop_notifications"`
	PlaySound            bool   `yaml:"play_sound" json:"play_sound"`
	AutoStart            bool   `yaml:"auto_start" json:"auto_start"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		CatalogURL:           DefaultCatalogURL,
		FetchTimeoutSeconds:  DefaultFetchTimeout,
		ReloadCron:           DefaultReloadCron,
		DesktopNotifications: true,
		PlaySound:            true,
	}
}

// Normalize fills in missing or invalid values with defaults.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.CatalogURL) == "" {
		c.CatalogURL = DefaultCatalogURL
	}
	switch c.CatalogFormat {
	case CatalogFormatJSON, CatalogFormatICal, "":
	default:
		c.CatalogFormat = ""
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = DefaultFetchTimeout
	}
	if c.ReloadCron == "" {
		c.ReloadCron = DefaultReloadCron
	}
}

// Format returns the catalog wire format, inferring it from the URL's
// extension when not set explicitly.
func (c *Config) Format() string {
	if c.CatalogFormat != "" {
		return c.CatalogFormat
	}
	p := c.CatalogURL
	if u, err := url.Parse(c.CatalogURL); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".ics", ".ical", ".ifb":
		return CatalogFormatICal
	}
	return CatalogFormatJSON
}

// FetchTimeout returns the catalog request timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ReloadEnabled reports whether the catalog should be reloaded on a schedule.
func (c *Config) ReloadEnabled() bool {
	return c.ReloadCron != "-"
}
