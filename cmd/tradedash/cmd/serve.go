package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedash/server"
	"github.com/rustyeddy/tradedash/warehouse"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the query gateway REST API",
	Long: `Start the HTTP gateway over the warehouse.

Endpoints:
  GET /v1/symbols
  GET /v1/traders
  GET /v1/strategies
  GET /v1/trades?symbol=&strategy=&trader=&asset_class=&date_from=&date_to=&limit=
  GET /v1/performance/{strategy_id}
  GET /v1/kpis
  GET /v1/loads

Example:
  tradedash serve -c tradedash.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := warehouse.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open warehouse: %w", err)
	}
	defer store.Close()

	logger := newLogger()
	handler := server.NewHandler(store, logger)
	router := server.NewRouter(&server.Config{Handler: handler})

	logger.WithField("port", cfg.Server.Port).Info("query gateway listening")
	return router.Run(fmt.Sprintf(":%s", cfg.Server.Port))
}
