package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:   "edgesplit",
	Short: "edgesplit - deterministic A/B bucket assignment for edge routing",
	Long: `edgesplit assigns visitors to weighted A/B test buckets and keeps
those assignments sticky across requests. Single Go binary, embedded SQLite
for exposure stats, JSON config with live reload.

Running without a subcommand starts the server (same as 'edgesplit serve').`,
	RunE: runServe, // Default action is to start the server
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", getEnvOrDefault("ES_CONFIG", "./ab_config.json"), "test configuration file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", getEnvOrDefault("ES_DB_PATH", "./edgesplit.db"), "database path")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
