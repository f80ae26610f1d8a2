// Command palletopt runs the multi-container palletizing search against
// one or more orders: a single-order debug run, a sequential dataset run,
// a parallel batch run, or a statistics-only dump.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/palletopt/internal/config"
	"github.com/piwi3910/palletopt/internal/logging"
)

var (
	ordersPath string
	outDir     string
)

var rootCmd = &cobra.Command{
	Use:   "palletopt",
	Short: "Multi-container 3D palletizing search",
	Long: `palletopt packs orders of rectangular boxes onto pallets: a deterministic
extreme-point placement engine finds feasible positions, and an NSGA-II-style
evolutionary search orders product types to jointly maximize volume
utilization and compactness while minimizing per-pallet heterogeneity.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&ordersPath, "orders", "", "path to an order CSV or XLSX file")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", ".", "directory to write result CSVs into")

	rootCmd.AddCommand(runCmd, batchCmd, sequentialCmd, singleCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRunDeps builds the shared config and logger every subcommand needs.
func loadRunDeps() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}
	return cfg, logger, nil
}
