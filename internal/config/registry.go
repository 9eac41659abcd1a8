package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

const (
	EnvRegistryVersionStart = "REGISTRY_VERSION_START"
	EnvRegistryVersionStep  = "REGISTRY_VERSION_STEP"
	EnvRegistryMaxRetries   = "REGISTRY_MAX_RETRIES"
	EnvRegistryBaseURL      = "REGISTRY_BASE_URL"
)

// RegistryConfig holds the document registry rules.
type RegistryConfig struct {
	// VersionStart is the number of the first version of a document.
	// Default: 100
	VersionStart int `toml:"version_start"`

	// VersionStep is added to the latest version number on every update.
	// Default: 10
	VersionStep int `toml:"version_step"`

	// MaxRetries bounds the attempts of a version append that loses a race.
	// Default: 3
	MaxRetries int `toml:"max_retries"`

	// BaseURL is the public scheme and host used in resource URLs.
	// Default: "http://localhost:8000"
	BaseURL string `toml:"base_url"`
}

func (c *RegistryConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *RegistryConfig) Merge(overlay *RegistryConfig) {
	if overlay.VersionStart != 0 {
		c.VersionStart = overlay.VersionStart
	}
	if overlay.VersionStep != 0 {
		c.VersionStep = overlay.VersionStep
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
}

func (c *RegistryConfig) loadDefaults() {
	if c.VersionStart == 0 {
		c.VersionStart = 100
	}
	if c.VersionStep == 0 {
		c.VersionStep = 10
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}
}

func (c *RegistryConfig) loadEnv() {
	if v := os.Getenv(EnvRegistryVersionStart); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.VersionStart = n
		}
	}
	if v := os.Getenv(EnvRegistryVersionStep); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.VersionStep = n
		}
	}
	if v := os.Getenv(EnvRegistryMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv(EnvRegistryBaseURL); v != "" {
		c.BaseURL = v
	}
}

func (c *RegistryConfig) validate() error {
	if c.VersionStart < 1 {
		return fmt.Errorf("version_start must be positive")
	}
	if c.VersionStep < 1 {
		return fmt.Errorf("version_step must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be positive")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	return nil
}
