package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orderdesk/internal/commons"
	"orderdesk/internal/config"
	"orderdesk/internal/infrastructure/logger"
)

type options struct {
	configFile string
	envFile    string
}

// NewRootCmd builds the orderdesk command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "orderdesk",
		Short:         "Order desk persistence service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file; environment variables override it")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded into the environment when present")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newMigrateCmd(opts))

	return root
}

// bootstrap loads the dotenv file, the configuration and the logger shared
// by every subcommand.
func bootstrap(opts *options) (*config.Config, *zap.Logger, error) {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("loading %s: %w", opts.envFile, err)
		}
	}

	cfg, err := commons.LoadConfig(opts.configFile)
	if err != nil {
		return nil, nil, err
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	return cfg, zapLogger, nil
}
