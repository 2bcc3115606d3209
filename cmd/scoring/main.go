package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	// A missing .env file is fine; explicit environment always wins.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "scoring",
		Short:         "Batch scoring engine for electoral candidate public records",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := &globalFlags{}
	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "YAML configuration file (defaults apply when omitted)")
	flags.StringVar(&g.dbPath, "db", "scoring.db", "SQLite database path")
	flags.IntVar(&g.workers, "workers", 0, "Override worker-pool size from the configuration")
	flags.StringVar(&g.metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	flags.BoolVar(&g.verbose, "verbose", false, "Enable debug logging")
	flags.BoolVar(&g.strict, "strict", false, "Exit non-zero when any candidate in a batch fails")

	root.AddCommand(
		newRecomputeCmd(g),
		newReconcileCmd(g),
		newApplyCategoriesCmd(g),
		newShowCmd(g),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
