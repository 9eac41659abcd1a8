package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvNotificationsEnabled  = "NOTIFICATIONS_ENABLED"
	EnvNotificationsURL      = "NOTIFICATIONS_URL"
	EnvNotificationsClientID = "NOTIFICATIONS_CLIENT_ID"
	EnvNotificationsSecret   = "NOTIFICATIONS_SECRET"

	EnvRemoteEnabled  = "REMOTE_ENABLED"
	EnvRemoteClientID = "REMOTE_CLIENT_ID"
	EnvRemoteSecret   = "REMOTE_SECRET"

	EnvAuthEnabled = "AUTH_ENABLED"
	EnvAuthSecret  = "AUTH_SECRET"
)

// ClientCredentials identify the registry towards other ZGW services.
type ClientCredentials struct {
	ClientID string `toml:"client_id"`
	Secret   string `toml:"secret"`
}

func (c *ClientCredentials) merge(overlay *ClientCredentials) {
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
}

// NotificationsConfig configures the outbound notification dispatcher.
type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`

	// QueueSize bounds pending messages; a full queue drops new ones.
	// Default: 256
	QueueSize int `toml:"queue_size"`

	// RateLimit is the number of messages sent per second.
	// Default: 10
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
	Timeout   string  `toml:"timeout"`

	ClientCredentials
}

func (c *NotificationsConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *NotificationsConfig) Finalize() error {
	if c.QueueSize == 0 {
		c.QueueSize = 256
	}
	if c.RateLimit == 0 {
		c.RateLimit = 10
	}
	if c.Burst == 0 {
		c.Burst = 1
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}

	if v := os.Getenv(EnvNotificationsEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := os.Getenv(EnvNotificationsURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvNotificationsClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvNotificationsSecret); v != "" {
		c.Secret = v
	}

	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.Enabled && c.URL == "" {
		return fmt.Errorf("url required when enabled")
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be positive")
	}
	return nil
}

func (c *NotificationsConfig) Merge(overlay *NotificationsConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.QueueSize != 0 {
		c.QueueSize = overlay.QueueSize
	}
	if overlay.RateLimit != 0 {
		c.RateLimit = overlay.RateLimit
	}
	if overlay.Burst != 0 {
		c.Burst = overlay.Burst
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	c.ClientCredentials.merge(&overlay.ClientCredentials)
}

// RemoteConfig configures the lookups against the zaken and besluiten APIs.
type RemoteConfig struct {
	Enabled bool   `toml:"enabled"`
	Timeout string `toml:"timeout"`

	ClientCredentials
}

func (c *RemoteConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *RemoteConfig) Finalize() error {
	if c.Timeout == "" {
		c.Timeout = "10s"
	}

	if v := os.Getenv(EnvRemoteEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := os.Getenv(EnvRemoteClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvRemoteSecret); v != "" {
		c.Secret = v
	}

	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

func (c *RemoteConfig) Merge(overlay *RemoteConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	c.ClientCredentials.merge(&overlay.ClientCredentials)
}

// AuthConfig configures verification of inbound bearer tokens. When
// disabled every caller is anonymous and may not force an unlock.
type AuthConfig struct {
	Enabled bool   `toml:"enabled"`
	Secret  string `toml:"secret"`
}

func (c *AuthConfig) Finalize() error {
	if v := os.Getenv(EnvAuthEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := os.Getenv(EnvAuthSecret); v != "" {
		c.Secret = v
	}

	if c.Enabled && c.Secret == "" {
		return fmt.Errorf("secret required when enabled")
	}
	return nil
}

func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
}
