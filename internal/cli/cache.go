package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ternary/smartcontext/internal/clock"
	"github.com/ternary/smartcontext/internal/embedding"
	"github.com/ternary/smartcontext/internal/pipeline"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the embedding cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Evict embedding cache entries older than --max-cache-age-ms",
	RunE:  runCacheClean,
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClean(cmd *cobra.Command, args []string) error {
	settings := Settings()

	cache := embedding.NewCache(settings.CacheDir, pipeline.NewOSFilesystem())
	cache.Cleanup(clock.System{}.NowMS(), settings.MaxCacheAgeMS)

	fmt.Fprintf(cmd.OutOrStdout(), "cleaned entries older than %dms in %s\n", settings.MaxCacheAgeMS, settings.CacheDir)
	return nil
}
