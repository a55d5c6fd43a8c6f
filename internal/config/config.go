// Package config loads heft settings from heft.toml and HEFT_* environment
// variables. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	herrors "github.com/matzehuels/heft/pkg/errors"
	"github.com/matzehuels/heft/pkg/measure"
	"github.com/matzehuels/heft/pkg/resolve"
)

// FileName is the config file searched for next to the root module.
const FileName = "heft.toml"

// Config holds every setting of a weight run.
type Config struct {
	Extensions  []string    `toml:"extensions"` // HEFT_EXTENSIONS (comma separated)
	Workers     int         `toml:"workers"`    // HEFT_WORKERS (default 1)
	External    bool        `toml:"external"`   // HEFT_EXTERNAL
	Compression Compression `toml:"compression"`
	Cache       Cache       `toml:"cache"`
	Output      Output      `toml:"output"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// Compression configures brotli.
type Compression struct {
	Quality int `toml:"quality"`
	Window  int `toml:"window"`
}

// Cache configures the measurement cache.
type Cache struct {
	Enabled  bool     `toml:"enabled"`
	Dir      string   `toml:"dir"`       // HEFT_CACHE_DIR
	TTL      Duration `toml:"ttl"`       // e.g. "720h"
	RedisURL string   `toml:"redis_url"` // HEFT_REDIS_URL, takes precedence over Dir
}

// Output configures what the weight command prints.
type Output struct {
	Source bool   `toml:"source"` // dump each file's source
	JSON   bool   `toml:"json"`   // print the report as JSON
	Graph  string `toml:"graph"`  // write the import graph (.dot or .svg)
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Extensions: append([]string(nil), resolve.DefaultExtensions...),
		Workers:    1,
		Compression: Compression{
			Quality: measure.DefaultQuality,
			Window:  measure.DefaultWindow,
		},
		Output: Output{Source: true},
	}
}

// Find looks for FileName in dir and each of its parents. It returns the
// path of the first match and false if there is none.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads the config file at path, or uses defaults when path is empty,
// then applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "config file %s not found", path).WithPath(path)
			}
			return nil, herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "parse %s", path).WithPath(path)
		}
		cfg.Path = path
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFor loads the config for a walk rooted at root. An explicit path wins;
// otherwise heft.toml is searched upward from root's directory.
func LoadFor(root, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, _ := Find(filepath.Dir(root))
	return Load(path)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HEFT_EXTENSIONS"); v != "" {
		c.Extensions = splitList(v)
	}
	if v := os.Getenv("HEFT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "HEFT_WORKERS")
		}
		c.Workers = n
	}
	if v := os.Getenv("HEFT_EXTERNAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "HEFT_EXTERNAL")
		}
		c.External = b
	}
	c.Cache.Dir = envOrDefault("HEFT_CACHE_DIR", c.Cache.Dir)
	c.Cache.RedisURL = envOrDefault("HEFT_REDIS_URL", c.Cache.RedisURL)
	return nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return herrors.New(herrors.ErrCodeInvalidConfig, "workers must be at least 1, got %d", c.Workers)
	}
	if len(c.Extensions) == 0 {
		return herrors.New(herrors.ErrCodeInvalidConfig, "at least one extension is required")
	}
	for _, ext := range c.Extensions {
		if err := herrors.ValidateExtension(ext); err != nil {
			return herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "extensions")
		}
	}
	opts := c.MeasureOptions()
	if err := opts.Validate(); err != nil {
		return herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "compression")
	}
	// measure.Options treats zero as "use the default", so an explicit zero
	// here would silently compress at a different setting.
	if c.Compression.Quality == 0 {
		return herrors.New(herrors.ErrCodeInvalidConfig, "compression quality must be between 1 and 11")
	}
	if c.Compression.Window == 0 {
		return herrors.New(herrors.ErrCodeInvalidConfig, "compression window must be between 10 and 24")
	}
	if c.Cache.TTL.Duration < 0 {
		return herrors.New(herrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if g := c.Output.Graph; g != "" {
		switch strings.ToLower(filepath.Ext(g)) {
		case ".dot", ".svg":
		default:
			return herrors.New(herrors.ErrCodeInvalidConfig, "graph output %s must end in .dot or .svg", g)
		}
	}
	return nil
}

// MeasureOptions returns the measurement settings.
func (c *Config) MeasureOptions() measure.Options {
	return measure.Options{Quality: c.Compression.Quality, Window: c.Compression.Window}
}

// ResolveOptions returns the resolver settings.
func (c *Config) ResolveOptions() resolve.Options {
	return resolve.Options{Extensions: c.Extensions}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
