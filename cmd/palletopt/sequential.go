package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/palletopt/internal/batch"
)

var sequentialCmd = &cobra.Command{
	Use:   "sequential",
	Short: "Process every order in --orders one at a time, with no worker pool",
	RunE:  runSequential,
}

func runSequential(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRunDeps()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	orders, err := loadOrders(ordersPath)
	if err != nil {
		return err
	}

	outcomes := batch.RunSequential(cmd.Context(), orderList(orders), batchConfigFrom(cfg))
	if err := writeOutcomes(outcomes, logger, nil); err != nil {
		return err
	}
	logger.Info("sequential run complete", zap.Int("orders", len(outcomes)))
	return nil
}
