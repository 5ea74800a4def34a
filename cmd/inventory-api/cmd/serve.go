package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inventory-api/internal/api"
	"inventory-api/internal/config"
	"inventory-api/internal/inventory"
)

// Command flags
var (
	listenAddr string // Listen address override
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inventory over HTTP",
	Long: `Load the inventory file and serve it until SIGINT or SIGTERM.

The service refuses to start if the inventory file is missing, unreadable or
has no all.children section. The inventory is loaded once; restart the
process to pick up changes.

Examples:
  # Serve ./hosts.yaml on :8000
  inventory-api serve

  # Serve a specific inventory on another port
  inventory-api serve -i /etc/ansible/hosts.yaml --listen :9000

  # Plain flavor: no enrichment, no bare /query route
  INVENTORY_API_FEATURES_ENRICHMENT=false INVENTORY_API_FEATURES_ALL_HOSTS_ROUTE=false inventory-api serve`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (overrides server.listen)")
}

// runServe loads the inventory and runs the HTTP server.
func runServe(cmd *cobra.Command, args []string) {
	cfg, logger := loadConfig(cmd)

	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
		if err := config.Validate(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "❌ invalid --listen: %v\n", err)
			os.Exit(1)
		}
	}

	router, err := buildRouter(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	server := api.NewServer(&cfg.Server, router, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		stop()
		os.Exit(1)
	}
}

// buildRouter loads the inventory named by cfg and wires it into the HTTP router.
// No router is returned when the inventory cannot be loaded.
func buildRouter(cfg *config.Config, logger zerolog.Logger) (http.Handler, error) {
	logger.Info().Str("path", cfg.Inventory.File).Msg("loading host inventory file")
	idx, err := inventory.LoadIndex(cfg.Inventory.File)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Inventory.File).Msg("failed to load inventory")
		return nil, err
	}

	logger.Info().
		Int("groups", idx.GroupCount()).
		Int("hosts", idx.HostCount()).
		Bool("enrichment", cfg.Features.Enrichment).
		Bool("all_hosts_route", cfg.Features.AllHostsRoute).
		Msg("inventory loaded")

	return api.NewRouter(idx, api.Options{
		EnrichmentSupported:  cfg.Features.Enrichment,
		AllHostsRouteEnabled: cfg.Features.AllHostsRoute,
		AllowedOrigin:        cfg.Server.CORSAllowedOrigin,
	}, logger), nil
}
