package logging

import (
	"fmt"
	"os"
	"strconv"
)

// Output destinations.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// Env maps environment variable names for logging configuration.
type Env struct {
	Level  string
	Format string
	Output string
	Source string
}

// Config holds logging configuration settings. Source adds the calling file
// and line to every record.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
	Output string `toml:"output"`
	Source *bool  `toml:"source"`
}

// AddSource reports whether records carry their source location.
func (c *Config) AddSource() bool {
	return c.Source != nil && *c.Source
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
// A nil Source leaves the base setting in place.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.Output != "" {
		c.Output = overlay.Output
	}
	if overlay.Source != nil {
		c.Source = overlay.Source
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.Output == "" {
		c.Output = OutputStdout
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := lookup(env.Level); v != "" {
		c.Level = Level(v)
	}
	if v := lookup(env.Format); v != "" {
		c.Format = Format(v)
	}
	if v := lookup(env.Output); v != "" {
		c.Output = v
	}
	if v := lookup(env.Source); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Source = &b
		}
	}
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	if err := c.Format.Validate(); err != nil {
		return err
	}
	switch c.Output {
	case OutputStdout, OutputStderr:
		return nil
	default:
		return fmt.Errorf("invalid log output: %s (must be stdout or stderr)", c.Output)
	}
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
