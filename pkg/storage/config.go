// Package storage holds the content storage configuration shared by the
// storage backends and the document upload path.
package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
)

// Backend names accepted in Config.Backends.
const (
	BackendFilesystem = "filesystem"
	BackendMemory     = "memory"
)

// Config contains content storage configuration.
type Config struct {
	// Backends lists the content backends in priority order. Writes go to
	// every backend, reads come from the first backend holding the key.
	// Default: ["filesystem"]
	Backends []string `toml:"backends"`

	// BasePath is the root directory for filesystem storage.
	// Default: ".data/content"
	BasePath string `toml:"base_path"`

	MinUploadSize string `toml:"min_upload_size"`
	MaxUploadSize string `toml:"max_upload_size"`

	minUploadSizeVal int64
	maxUploadSizeVal int64
}

type Env struct {
	Backends      string
	BasePath      string
	MinUploadSize string
	MaxUploadSize string
}

func (c *Config) MinUploadSizeBytes() int64 {
	return c.minUploadSizeVal
}

func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if len(overlay.Backends) > 0 {
		c.Backends = overlay.Backends
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if _, err := units.FromHumanSize(overlay.MinUploadSize); err == nil {
		c.MinUploadSize = overlay.MinUploadSize
	}
	if _, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}

func (c *Config) loadDefaults() {
	if len(c.Backends) == 0 {
		c.Backends = []string{BackendFilesystem}
	}
	if c.BasePath == "" {
		c.BasePath = ".data/content"
	}
	if c.MinUploadSize == "" {
		c.MinUploadSize = "0B"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "100MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Backends != "" {
		if v := os.Getenv(env.Backends); v != "" {
			c.Backends = nil
			for b := range strings.SplitSeq(v, ",") {
				if b = strings.TrimSpace(b); b != "" {
					c.Backends = append(c.Backends, b)
				}
			}
		}
	}
	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
	if env.MinUploadSize != "" {
		if v := os.Getenv(env.MinUploadSize); v != "" {
			c.MinUploadSize = v
		}
	}
	if env.MaxUploadSize != "" {
		if v := os.Getenv(env.MaxUploadSize); v != "" {
			c.MaxUploadSize = v
		}
	}
}

func (c *Config) validate() error {
	if len(c.Backends) == 0 {
		return fmt.Errorf("at least one backend required")
	}
	seen := make(map[string]bool, len(c.Backends))
	for _, b := range c.Backends {
		switch b {
		case BackendFilesystem, BackendMemory:
		default:
			return fmt.Errorf("unknown backend %q (must be filesystem or memory)", b)
		}
		if seen[b] {
			return fmt.Errorf("backend %q listed twice", b)
		}
		seen[b] = true
	}

	if seen[BackendFilesystem] && c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	minSize, err := units.FromHumanSize(c.MinUploadSize)
	if err != nil {
		return fmt.Errorf("invalid min_upload_size: %w", err)
	}
	if minSize < 0 {
		return fmt.Errorf("min_upload_size must not be negative")
	}

	maxSize, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if maxSize <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	if minSize > maxSize {
		return fmt.Errorf("min_upload_size exceeds max_upload_size")
	}

	c.minUploadSizeVal = minSize
	c.maxUploadSizeVal = maxSize
	return nil
}
