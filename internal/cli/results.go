package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgesplit/edgesplit/internal/config"
	"github.com/edgesplit/edgesplit/internal/stats"
	"github.com/edgesplit/edgesplit/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results <name>",
	Short: "Show recorded bucket shares for a test",
	Long: `Show how recorded visitors actually split across a test's buckets,
next to the configured ratios, with a sample ratio mismatch check.`,
	Args: cobra.ExactArgs(1),
	RunE: runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	name := args[0]

	cat, err := config.LoadCatalog(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	def, ok := cat.Get(name)
	if !ok {
		return fmt.Errorf("test '%s' not found in %s", name, configPath)
	}

	return withStore(func(s *store.SQLiteStore) error {
		ctx := context.Background()

		bucketStats, err := s.GetBucketStats(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		counts := make(map[string]int, len(bucketStats))
		for _, bs := range bucketStats {
			counts[bs.Bucket] = bs.Visitors
		}

		printDistribution(def.Name, stats.Analyze(def, counts))
		return nil
	})
}
