package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orderdesk/internal/customer"
	"orderdesk/internal/deliveryman"
	"orderdesk/internal/infrastructure/database"
	"orderdesk/internal/item"
	"orderdesk/internal/order"
	"orderdesk/internal/server"
	"orderdesk/internal/txn"
)

func newServeCmd(opts *options) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, zapLogger, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer zapLogger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			provider, err := database.Open(ctx, cfg.Database)
			if err != nil {
				zapLogger.Error("connecting to database", zap.Error(err))
				return err
			}
			defer provider.Close()
			zapLogger.Info("database connected", zap.String("driver", provider.Driver()))

			if migrate {
				if err := database.Migrate(ctx, provider); err != nil {
					return err
				}
			}

			coordinator := txn.NewCoordinator(provider, zapLogger, cfg.Transaction.Timeout, cfg.Transaction.MaxRetryAttempts)

			router := server.NewRouter(server.Controllers{
				Customers:   customer.NewModule(provider, coordinator, zapLogger),
				Deliverymen: deliveryman.NewModule(provider, coordinator, zapLogger),
				Items:       item.NewModule(provider, coordinator, zapLogger),
				Orders:      order.NewModule(provider, coordinator, zapLogger),
			}, provider, zapLogger)

			srv := server.New(cfg.Server, router, zapLogger)
			if err := srv.Run(ctx); err != nil {
				zapLogger.Error("server stopped with error", zap.Error(err))
				return err
			}

			zapLogger.Info("server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")

	return cmd
}
