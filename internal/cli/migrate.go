package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the billing tables",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var migrateFlags struct {
	seed bool
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateFlags.seed, "seed", false, "Insert demo data into an empty database (same as SEED_DEV=1)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if migrateFlags.seed {
		cfg.SeedDev = true
	}

	st, err := openStore(cmd.Context(), cfg, log, true)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer st.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", st.Driver())
	return nil
}
