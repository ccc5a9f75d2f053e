package main

import (
	"github.com/deppfellow/frontdesk/internal/config"
	"github.com/deppfellow/frontdesk/internal/handler"
	"github.com/deppfellow/frontdesk/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "frontdesk",
		Short: "Multi-sector front desk booking API",
		Long: `frontdesk serves the booking API for providers (clinics, garages,
salons, real estate offices) and their clients.

Configuration is read from FRONTDESK_* environment variables and an
optional .env file.

Commands:
  serve    - Run the HTTP API
  migrate  - Apply pending database migrations`,
		Version:       handler.APIVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())

	return root
}

// bootstrap loads the config and builds the application logger shared by
// every command. The caller must call LoggerService.Shutdown.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}
