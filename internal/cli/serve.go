package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dayimpact/ecocoach/internal/config"
	"github.com/dayimpact/ecocoach/internal/server"
	"github.com/dayimpact/ecocoach/internal/storage"
)

// NewServeCmd creates the serve command, which runs the HTTP API until
// interrupted.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Global()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := storage.Open(ctx, databasePath(cmd), logger)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(store, cfg.Server.CORSOrigins, logger)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
