package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Dump per-order entropy, complexity, and size class without packing",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	orders, err := loadOrders(ordersPath)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		o := orders[id]
		fmt.Printf("%s\titems=%d\tproducts=%d\tentropy=%.4f\tcomplexity=%s\tsize=%s\n",
			id, len(o.Items), len(o.ProductIDs()), o.Entropy(), o.ComplexityClass(), o.SizeClass())
	}
	return nil
}
