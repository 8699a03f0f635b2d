package cli

import (
	"context"

	"billing-admin/internal/config"
	"billing-admin/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "billing",
	Short: "Billing administration backend",
	Long: `billing serves the invoice administration API and bulk loads
platforms, clients, invoices and transactions from CSV exports.

Configuration comes from an optional YAML file (--config or BILLING_CONFIG),
then .env, then the process environment.

Exit Codes:
  0  - Success
  1  - Any failure (config, database, load or server error)`,
	SilenceUsage: true,
}

var rootFlags struct {
	config  string
	verbose bool
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.config, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable debug logging")
}

// setup loads configuration and builds the logger every command shares.
func setup() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return config.Config{}, nil, err
	}
	if rootFlags.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, config.NewLogger(cfg.LogLevel, cfg.LogFormat), nil
}

// openStore connects and, when configured, migrates and seeds.
func openStore(ctx context.Context, cfg config.Config, log *logrus.Logger, migrate bool) (*store.Store, error) {
	st, err := store.OpenConfig(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
	}
	if cfg.SeedDev {
		if err := st.Seed(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
	}
	return st, nil
}
