package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orderdesk/internal/infrastructure/database"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create any missing table in the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, zapLogger, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer zapLogger.Sync()

			provider, err := database.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer provider.Close()

			if err := database.Migrate(cmd.Context(), provider); err != nil {
				return err
			}

			zapLogger.Info("schema up to date", zap.String("driver", provider.Driver()))
			return nil
		},
	}
}
