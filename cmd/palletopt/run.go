package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/palletopt/internal/batch"
	"github.com/piwi3910/palletopt/internal/config"
	"github.com/piwi3910/palletopt/internal/model"
	"github.com/piwi3910/palletopt/internal/orderio"
	"github.com/piwi3910/palletopt/internal/telemetry"
)

var workers int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Parallel dataset run: pack every order in --orders across a worker pool",
	RunE:  runRun,
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Batched run with an explicit --workers degree of parallelism",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&workers, "workers", 4, "worker pool size (clamped to [2, 8])")
}

func runRun(cmd *cobra.Command, args []string) error {
	return execute(cmd.Context(), 0)
}

func runBatch(cmd *cobra.Command, args []string) error {
	return execute(cmd.Context(), workers)
}

// execute loads orders, runs the batch driver (optionally overriding
// parallelism), writes the three result CSVs, and logs a summary.
func execute(ctx context.Context, parallelismOverride int) error {
	cfg, logger, err := loadRunDeps()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	orders, err := loadOrders(ordersPath)
	if err != nil {
		return err
	}

	batchCfg := batchConfigFrom(cfg)
	if parallelismOverride > 0 {
		batchCfg.Parallelism = parallelismOverride
	}

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.New()
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	outcomes := batch.Run(ctx, orderList(orders), batchCfg)
	return writeOutcomes(outcomes, logger, metrics)
}

func batchConfigFrom(cfg *config.Config) batch.Config {
	return batch.Config{
		BaseSeed:      cfg.Batch.BaseSeed,
		Parallelism:   cfg.Batch.Parallelism,
		BaseMaxPallet: cfg.Pallet.MaxPallets,
		AllowRotation: cfg.Pallet.AllowRotation,
		PalletDims:    cfg.PalletDimensions(),
		GA:            cfg.GASettings(),
	}
}

func loadOrders(path string) (map[string]model.Order, error) {
	if path == "" {
		return nil, fmt.Errorf("--orders is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening orders file: %w", err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".xlsx":
		return orderio.ReadXLSX(f)
	default:
		return orderio.ReadCSV(f)
	}
}

func orderList(orders map[string]model.Order) []model.Order {
	list := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		list = append(list, o)
	}
	return list
}

func writeOutcomes(outcomes []batch.OrderOutcome, logger *zap.Logger, metrics *telemetry.Metrics) error {
	results := make([]model.OrderResult, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			logger.Warn("order failed", zap.String("order_id", o.OrderID), zap.Error(o.Err))
			if metrics != nil {
				metrics.OrdersProcessed.WithLabelValues("failed").Inc()
			}
			continue
		}
		results = append(results, o.Result)
		logger.Debug("order processed", zap.String("order_id", o.OrderID), zap.String("run_id", o.Result.RunID))
		if metrics != nil {
			metrics.ObserveOrder("ok", o.Result.ItemsPlaced(), o.Result.ItemsUnplaced(), o.Result.ExecutionMs/1000.0)
		}
	}

	summaryPath := filepath.Join(outDir, "summary.csv")
	detailPath := filepath.Join(outDir, "detail.csv")
	placementsPath := filepath.Join(outDir, "placements.csv")

	if err := writeCSV(summaryPath, func(f *os.File) error { return orderio.WriteSummary(f, "nsga2", results, true) }); err != nil {
		return err
	}
	if err := writeCSV(detailPath, func(f *os.File) error { return orderio.WriteDetail(f, results, true) }); err != nil {
		return err
	}
	if err := writeCSV(placementsPath, func(f *os.File) error { return orderio.WritePlacements(f, results, true, true) }); err != nil {
		return err
	}

	logger.Info("batch complete", zap.Int("orders", len(outcomes)), zap.Int("failed", failed))
	return nil
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
