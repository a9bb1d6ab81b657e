package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dowtrend",
	Short: "B3 stock return trends across five horizons",
	Long: `dowtrend CLI

Resolves a sample of B3 tickers, downloads adjusted close history and stores the
latest weekly, biweekly, monthly, quarterly and annual returns per ticker.

Usage:
  go run ./cmd/dowtrend [command]

Examples:
  go run ./cmd/dowtrend run index:IDIV
  go run ./cmd/dowtrend run --all-indices
  go run ./cmd/dowtrend results index:IDIV --rank mensal
  go run ./cmd/dowtrend serve
  go run ./cmd/dowtrend scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "results directory (overrides DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
