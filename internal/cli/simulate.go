package cli

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edgesplit/edgesplit/internal/bucket"
	"github.com/edgesplit/edgesplit/internal/config"
	"github.com/edgesplit/edgesplit/internal/stats"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <name>",
	Short: "Simulate draws against a test and show the distribution",
	Long: `Run N uniform draws against one test and print the observed bucket
shares next to the configured ratios. Useful for sanity-checking a weight
spec before it goes live.

Example:
  edgesplit simulate buttonsize --draws 100000`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

var (
	simDraws int
	simSeed  int64
)

func init() {
	simulateCmd.Flags().IntVarP(&simDraws, "draws", "n", 100000, "number of draws")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 = nondeterministic)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	name := args[0]

	cat, err := config.LoadCatalog(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	def, ok := cat.Get(name)
	if !ok {
		return fmt.Errorf("test '%s' not found in %s", name, configPath)
	}

	seed := simSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	counts := make(map[string]int, len(def.Buckets))
	for i := 0; i < simDraws; i++ {
		idx := bucket.Select(def, rng.Intn(def.Total))
		counts[def.Buckets[idx]]++
	}

	printDistribution(def.Name, stats.Analyze(def, counts))
	return nil
}

// printDistribution is shared with the results command.
func printDistribution(name string, result stats.Result) {
	fmt.Printf("TEST: %s\n", name)
	fmt.Printf("VISITORS: %d\n", result.Total)
	fmt.Println()

	fmt.Println("BUCKET            WEIGHT   VISITORS   OBSERVED   EXPECTED")
	fmt.Println(strings.Repeat("─", 58))
	for _, s := range result.Shares {
		fmt.Printf("%-16s  %6d  %9d  %8.2f%%  %8.2f%%\n",
			s.Bucket, s.Weight, s.Visitors, s.Observed*100, s.Expected*100)
	}
	fmt.Println()

	if result.Mismatch {
		fmt.Printf("⚠ sample ratio mismatch (chi² = %.2f): the observed split does not match the configured weights\n", result.ChiSq)
	} else if result.Total > 0 {
		fmt.Printf("distribution consistent with configured weights (chi² = %.2f)\n", result.ChiSq)
	}
}
