package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/matzehuels/heft/pkg/errors"
	"github.com/matzehuels/heft/pkg/measure"
	"github.com/matzehuels/heft/pkg/resolve"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HEFT_EXTENSIONS", "HEFT_WORKERS", "HEFT_EXTERNAL", "HEFT_CACHE_DIR", "HEFT_REDIS_URL"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, resolve.DefaultExtensions, cfg.Extensions)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.External)
	assert.Equal(t, measure.DefaultQuality, cfg.Compression.Quality)
	assert.Equal(t, measure.DefaultWindow, cfg.Compression.Window)
	assert.False(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Output.Source)
	assert.Empty(t, cfg.Path)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
extensions = [".ts", ".js"]
workers = 4
external = true

[compression]
quality = 9

[cache]
enabled = true
dir = "/tmp/heft-cache"
ttl = "24h"

[output]
json = true
graph = "graph.svg"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, []string{".ts", ".js"}, cfg.Extensions)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.External)
	assert.Equal(t, 9, cfg.Compression.Quality)
	assert.Equal(t, measure.DefaultWindow, cfg.Compression.Window, "unset keys keep defaults")
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/heft-cache", cfg.Cache.Dir)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL.Duration)
	assert.True(t, cfg.Output.Source)
	assert.True(t, cfg.Output.JSON)
	assert.Equal(t, "graph.svg", cfg.Output.Graph)

	assert.Equal(t, measure.Options{Quality: 9, Window: measure.DefaultWindow}, cfg.MeasureOptions())
	assert.Equal(t, []string{".ts", ".js"}, cfg.ResolveOptions().Extensions)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Equal(t, herrors.ErrCodeInvalidConfig, herrors.GetCode(err))

	bad := writeConfig(t, dir, "workers = [")
	_, err = Load(bad)
	assert.Equal(t, herrors.ErrCodeInvalidConfig, herrors.GetCode(err))
	assert.Equal(t, bad, herrors.GetPath(err))

	zero := writeConfig(t, t.TempDir(), "[compression]\nquality = 0\n")
	_, err = Load(zero)
	assert.Equal(t, herrors.ErrCodeInvalidConfig, herrors.GetCode(err))
	assert.Contains(t, herrors.UserMessage(err), "quality")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "workers = 2\n")

	t.Setenv("HEFT_WORKERS", "8")
	t.Setenv("HEFT_EXTENSIONS", ".ts, .mts")
	t.Setenv("HEFT_EXTERNAL", "true")
	t.Setenv("HEFT_CACHE_DIR", "/var/cache/heft")
	t.Setenv("HEFT_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, []string{".ts", ".mts"}, cfg.Extensions)
	assert.True(t, cfg.External)
	assert.Equal(t, "/var/cache/heft", cfg.Cache.Dir)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
}

func TestEnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"HEFT_WORKERS", "many"},
		{"HEFT_EXTERNAL", "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			assert.Equal(t, herrors.ErrCodeInvalidConfig, herrors.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"no extensions", func(c *Config) { c.Extensions = nil }, true},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"ts"} }, true},
		{"quality too high", func(c *Config) { c.Compression.Quality = 12 }, true},
		{"quality zero", func(c *Config) { c.Compression.Quality = 0 }, true},
		{"quality one", func(c *Config) { c.Compression.Quality = 1 }, false},
		{"window too small", func(c *Config) { c.Compression.Window = 9 }, true},
		{"window zero", func(c *Config) { c.Compression.Window = 0 }, true},
		{"window too large", func(c *Config) { c.Compression.Window = 25 }, true},
		{"negative ttl", func(c *Config) { c.Cache.TTL.Duration = -time.Second }, true},
		{"svg graph", func(c *Config) { c.Output.Graph = "out.svg" }, false},
		{"png graph", func(c *Config) { c.Output.Graph = "out.png" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Equal(t, herrors.ErrCodeInvalidConfig, herrors.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFind(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	nested := filepath.Join(root, "pkg", "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, ok := Find(nested)
	if ok {
		// A heft.toml above the temp dir would make this test meaningless.
		t.Skip("heft.toml found above the temp directory")
	}

	want := writeConfig(t, filepath.Join(root, "pkg"), "workers = 3\n")
	got, ok := Find(nested)
	require.True(t, ok)
	assert.Equal(t, want, got)

	clearEnv(t)
	cfg, err := LoadFor(filepath.Join(nested, "index.ts"), "")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, want, cfg.Path)
}

func TestLoadForExplicitPathWins(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "workers = 3\n")
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(explicit, []byte("workers = 5\n"), 0o644))

	cfg, err := LoadFor(filepath.Join(dir, "index.ts"), explicit)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workers)
}
