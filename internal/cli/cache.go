package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ossinfo/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the lookup cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var f cacheFlags
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.cacheURL, "cache-url", "", "clear a shared Redis cache instead")
	return cmd
}

func (c *CLI) runCacheClear(ctx context.Context, f cacheFlags) error {
	if f.cacheURL == "" && c.config.CacheURL == "" {
		dir, err := c.cachePath()
		if err != nil {
			return fmt.Errorf("get cache dir: %w", err)
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			printInfo("Cache is empty")
			return nil
		}
	}

	store, err := c.openCache(ctx, f)
	if err != nil {
		return err
	}
	defer store.Close()

	clearer, ok := store.(cache.Clearer)
	if !ok {
		printWarning("This cache backend cannot be cleared")
		return nil
	}
	count, err := clearer.Clear(ctx)
	if err != nil {
		return err
	}

	printSuccess("Cleared %d cached entries", count)
	if fc, ok := store.(*cache.FileCache); ok {
		printDetail("Directory: %s", fc.Dir())
	}
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cachePath()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cachePath is the configured cache_dir or the XDG default.
func (c *CLI) cachePath() (string, error) {
	if c.config.CacheDir != "" {
		return c.config.CacheDir, nil
	}
	return cacheDir()
}
