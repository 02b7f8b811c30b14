package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloomify/beatforge/cmd/beatforge/internal/config"
	"github.com/bloomify/beatforge/pkg/cache"
	"github.com/bloomify/beatforge/pkg/cli"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Analysis cache maintenance",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show analysis cache size",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dir, err := openCacheStrict()
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return cli.Output(map[string]any{
			"dir":     dir,
			"entries": stats.Entries,
			"size":    cli.FormatBytes(stats.Bytes),
		}, cli.OutputOptions{})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached analysis documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openCacheStrict()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	},
}

// openCacheStrict opens the cache for maintenance commands, where failure is
// an error rather than a silent fallback.
func openCacheStrict() (cache.Store, string, error) {
	fileCfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	dir := fileCfg.CacheDir()
	store, err := cache.NewBadger(cache.BadgerOptions{Dir: dir})
	if err != nil {
		return nil, "", fmt.Errorf("open cache at %s: %w", dir, err)
	}
	return store, dir, nil
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
