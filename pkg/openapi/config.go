package openapi

import (
	"fmt"
	"os"
	"strings"
)

// Config controls the generated document and the route it is served from.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Path        string `toml:"path"`
}

type ConfigEnv struct {
	Title       string
	Description string
	Path        string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "Document Registry API"
	}
	if c.Description == "" {
		c.Description = "Registers versioned information objects, their checkout locks, object relations and usage rights."
	}
	if c.Path == "" {
		c.Path = "/openapi.json"
	}

	if env != nil {
		setFromEnv(&c.Title, env.Title)
		setFromEnv(&c.Description, env.Description)
		setFromEnv(&c.Path, env.Path)
	}

	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path %q must start with /", c.Path)
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

func setFromEnv(dst *string, name string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
