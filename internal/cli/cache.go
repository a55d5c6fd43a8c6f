package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heft/internal/config"
	"github.com/matzehuels/heft/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the measurement cache",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: heft.toml in the current directory or above)")

	cmd.AddCommand(c.cacheClearCommand(&configPath))
	cmd.AddCommand(c.cachePathCommand(&configPath))

	return cmd
}

// loadCacheConfig loads the cache settings the weight command would use
// from the current directory.
func loadCacheConfig(configPath string) (config.Cache, error) {
	path := configPath
	if path == "" {
		path, _ = config.Find(".")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Cache{}, err
	}
	return cfg.Cache, nil
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCacheConfig(*configPath)
			if err != nil {
				return err
			}
			// Clearing works on the configured store even when caching is
			// switched off for walks.
			cfg.Enabled = true

			store, err := newCache(cfg)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo("Cache is empty")
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			if cfg.RedisURL != "" {
				printDetail("Redis: %s", cfg.RedisURL)
			} else if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCacheConfig(*configPath)
			if err != nil {
				return err
			}
			dir, err := resolveCacheDir(cfg.Dir)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
