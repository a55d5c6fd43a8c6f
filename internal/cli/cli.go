package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heft/internal/config"
	"github.com/matzehuels/heft/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "heft"

	// redisPrefix namespaces heft's keys in a shared Redis instance.
	redisPrefix = "heft:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives reports; diagnostics and the spinner go to the logger's
	// writer.
	Out io.Writer
}

// New creates a new CLI instance writing reports to stdout and logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache opens the measurement cache described by cfg. A Redis URL takes
// precedence over the cache directory; a disabled cache stores nothing.
func newCache(cfg config.Cache) (cache.Cache, error) {
	if !cfg.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(cfg.RedisURL, redisPrefix)
	}
	dir, err := resolveCacheDir(cfg.Dir)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// resolveCacheDir returns dir, or the default cache directory when empty.
func resolveCacheDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/heft/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
