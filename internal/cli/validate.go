package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgesplit/edgesplit/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a test configuration file",
	Long: `Build the catalog from the configuration file and report every active
test, or the first configuration error. Exits non-zero on failure, so it can
gate a deploy.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cat, err := config.LoadCatalog(configPath)
	if err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}

	fmt.Printf("%s: %d active test(s)\n\n", configPath, cat.Len())
	for _, name := range cat.ActiveTests() {
		def, _ := cat.Get(name)

		shares := make([]string, len(def.Buckets))
		for i, b := range def.Buckets {
			shares[i] = fmt.Sprintf("%s %d/%d", b, def.Weights[i], def.Total)
		}
		fmt.Printf("  %-16s %s\n", name, strings.Join(shares, ", "))
	}

	return nil
}
