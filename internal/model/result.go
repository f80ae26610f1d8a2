package model

// PalletResult is one used pallet in a committed solution: its dimensions
// and the final placement of every item assigned to it.
type PalletResult struct {
	PalletID int
	Dims     PalletDimensions
	Items    []Item // each carries its final X, Y, Z, Rotated
}

// VolumeUtilization returns used volume over total pallet volume.
func (pr PalletResult) VolumeUtilization() float64 {
	total := pr.Dims.Length * pr.Dims.Width * pr.Dims.Height
	if total == 0 {
		return 0
	}
	var used float64
	for _, it := range pr.Items {
		used += it.Volume()
	}
	return used / total
}

// HeightUtilization returns the pallet's top height over its max height.
func (pr PalletResult) HeightUtilization() float64 {
	if pr.Dims.Height == 0 {
		return 0
	}
	var top float64
	for _, it := range pr.Items {
		_, _, ch := it.CurrentExtents()
		if h := it.Z + ch; h > top {
			top = h
		}
	}
	return top / pr.Dims.Height
}

// Weight returns the total weight of items on the pallet.
func (pr PalletResult) Weight() float64 {
	var w float64
	for _, it := range pr.Items {
		w += it.Weight
	}
	return w
}

// ProductCounts returns per-product-id item counts on this pallet.
func (pr PalletResult) ProductCounts() map[string]int {
	counts := make(map[string]int)
	for _, it := range pr.Items {
		counts[it.ProductID]++
	}
	return counts
}

// OrderResult is the committed outcome of packing one order: the ordered
// list of pallets used and the items that could not be placed anywhere.
type OrderResult struct {
	OrderID       string
	RunID         string // correlates this result with its log/metric entries
	Pallets       []PalletResult
	Unplaced      []Item
	ItemCount     int
	ProductTypes  int
	Entropy       float64
	Complexity    ComplexityClass
	Heterogeneity float64 // mean distinct-products-per-pallet / K, across touched pallets
	Compactness   float64 // mean contact ratio across touched pallets
	ExecutionMs   float64
}

// ItemsPlaced returns the number of items successfully placed across all
// pallets.
func (r OrderResult) ItemsPlaced() int {
	n := 0
	for _, p := range r.Pallets {
		n += len(p.Items)
	}
	return n
}

// ItemsUnplaced returns the number of items that never found a home.
func (r OrderResult) ItemsUnplaced() int {
	return len(r.Unplaced)
}

// AvgVolumeUtilization returns the mean per-pallet volume utilization.
func (r OrderResult) AvgVolumeUtilization() float64 {
	if len(r.Pallets) == 0 {
		return 0
	}
	var sum float64
	for _, p := range r.Pallets {
		sum += p.VolumeUtilization()
	}
	return sum / float64(len(r.Pallets))
}

// AvgHeightUtilization returns the mean per-pallet height utilization.
func (r OrderResult) AvgHeightUtilization() float64 {
	if len(r.Pallets) == 0 {
		return 0
	}
	var sum float64
	for _, p := range r.Pallets {
		sum += p.HeightUtilization()
	}
	return sum / float64(len(r.Pallets))
}

// TotalWeight returns the combined weight of every placed item.
func (r OrderResult) TotalWeight() float64 {
	var w float64
	for _, p := range r.Pallets {
		w += p.Weight()
	}
	return w
}

// PlacementRate returns the percentage of the order's items that were
// placed (0 for an empty order).
func (r OrderResult) PlacementRate() float64 {
	if r.ItemCount == 0 {
		return 0
	}
	return float64(r.ItemsPlaced()) / float64(r.ItemCount) * 100.0
}
