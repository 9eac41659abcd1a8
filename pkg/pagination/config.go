// Package pagination provides types and utilities for paginated data queries.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Config bounds the page sizes list endpoints accept. Requests above
// MaxPageSize are clamped rather than rejected.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 100
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 500
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	for name, dst := range map[string]*int{
		env.DefaultPageSize: &c.DefaultPageSize,
		env.MaxPageSize:     &c.MaxPageSize,
	} {
		if name == "" {
			continue
		}
		if n, err := strconv.Atoi(os.Getenv(name)); err == nil {
			*dst = n
		}
	}
}

func (c *Config) validate() error {
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("default_page_size must be positive")
	}
	if c.MaxPageSize < 1 {
		return fmt.Errorf("max_page_size must be positive")
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default_page_size (%d) exceeds max_page_size (%d)", c.DefaultPageSize, c.MaxPageSize)
	}
	return nil
}
