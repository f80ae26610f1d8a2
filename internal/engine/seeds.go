package engine

import (
	"sort"

	"github.com/piwi3910/palletopt/internal/model"
)

// seedMetric names one of the five per-product statistics seed orderings
// are sorted by, per §4.8.
type seedMetric func(stats productStats) float64

type productStats struct {
	ProductID string
	Count     int
	Weight    float64 // mean item weight
	BaseArea  float64 // mean L*W
	MeanVol   float64 // mean item volume
	TotalVol  float64 // total item volume
}

var seedMetrics = []seedMetric{
	func(s productStats) float64 { return s.Weight },
	func(s productStats) float64 { return float64(s.Count) },
	func(s productStats) float64 { return s.BaseArea },
	func(s productStats) float64 { return s.MeanVol },
	func(s productStats) float64 { return s.TotalVol },
}

// SeedOrderings returns the ten deterministic permutations of stats'
// product ids required by §4.8: one ascending and one descending ordering
// for each of {mean weight, total count, mean base area, mean volume,
// total volume}, ties broken lexicographically by product id.
func SeedOrderings(stats []productStats) [][]string {
	orderings := make([][]string, 0, 10)
	for _, metric := range seedMetrics {
		orderings = append(orderings, sortedGenes(stats, metric, true))
		orderings = append(orderings, sortedGenes(stats, metric, false))
	}
	return orderings
}

func sortedGenes(stats []productStats, metric seedMetric, ascending bool) []string {
	cp := make([]productStats, len(stats))
	copy(cp, stats)
	sort.SliceStable(cp, func(i, j int) bool {
		a, b := metric(cp[i]), metric(cp[j])
		if a == b {
			return cp[i].ProductID < cp[j].ProductID
		}
		if ascending {
			return a < b
		}
		return a > b
	})
	genes := make([]string, len(cp))
	for i, s := range cp {
		genes[i] = s.ProductID
	}
	return genes
}

// BuildProductStats aggregates an order's items into per-product-id
// statistics for seed-ordering computation.
func BuildProductStats(itemsByProduct map[string][]model.Item) []productStats {
	stats := make([]productStats, 0, len(itemsByProduct))
	for pid, items := range itemsByProduct {
		n := len(items)
		if n == 0 {
			continue
		}
		var totalWeight, totalBaseArea, totalVol float64
		for _, it := range items {
			totalWeight += it.Weight
			totalBaseArea += it.L * it.W
			totalVol += it.Volume()
		}
		stats = append(stats, productStats{
			ProductID: pid,
			Count:     n,
			Weight:    totalWeight / float64(n),
			BaseArea:  totalBaseArea / float64(n),
			MeanVol:   totalVol / float64(n),
			TotalVol:  totalVol,
		})
	}
	return stats
}
