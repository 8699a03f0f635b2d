package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"billing-admin/internal/loader"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk load the CSV exports into the database",
	Long: `Reads platforms.csv, clients.csv, invoices.csv and transactions.csv from
the data directory, in that order. Rows whose platform, client or invoice
cannot be resolved are skipped. Any other failure stops the run; tables
already loaded stay committed.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

var loadFlags struct {
	dataDir string
}

func init() {
	loadCmd.Flags().StringVar(&loadFlags.dataDir, "data-dir", "", "Directory holding the CSV files (overrides DATA_DIR)")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	dataDir := cfg.DataDir
	if loadFlags.dataDir != "" {
		dataDir = loadFlags.dataDir
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log, cfg.AutoMigrate)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	results, err := loader.New(st, log).Run(ctx, dataDir)
	printSummary(cmd.OutOrStdout(), results)
	if err != nil {
		return fmt.Errorf("load %s: %w", dataDir, err)
	}
	return nil
}

func printSummary(w io.Writer, results []loader.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tREAD\tINSERTED\tSKIPPED")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", r.Table, r.Read, r.Inserted, r.Skipped)
	}
	_ = tw.Flush()
}
