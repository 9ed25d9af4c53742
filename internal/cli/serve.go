package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edgesplit/edgesplit/internal/config"
	"github.com/edgesplit/edgesplit/internal/server"
	"github.com/edgesplit/edgesplit/internal/store"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the decision server",
	Long: `Start the edgesplit HTTP server.

The server provides:
  - /decide     resolves and persists a visitor's bucket assignments
  - /health     health check endpoint
  - /api/tests  active test catalog for operators

The configuration file is watched and reloaded on change; a broken config
keeps the last-known-good catalog in service.

Example:
  edgesplit serve --config ab_config.json --port 8080`,
	RunE: runServe,
}

func init() {
	defaultPort := 8080
	if p := os.Getenv("ES_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			defaultPort = parsed
		}
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", defaultPort, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logrus.New()

	cat, err := config.LoadCatalog(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	handle := config.NewHandle(cat)

	watcher, err := config.Watch(configPath, handle, log)
	if err != nil {
		return fmt.Errorf("failed to watch config: %w", err)
	}
	defer watcher.Close()

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	srv := server.New(handle, s, port, log)
	return srv.Start()
}
