package engine

import (
	"math"

	"github.com/piwi3910/palletopt/internal/geometry"
	"github.com/piwi3910/palletopt/internal/model"
	"github.com/piwi3910/palletopt/internal/packing"
)

// EvalResult is the outcome of applying one gene ordering to a fresh
// pallet stack: the touched pallets (each already holding its final
// placements), any items that never found a home, and the validity flag.
type EvalResult struct {
	Pallets  []*model.Pallet
	Unplaced []model.Item
	Valid    bool
}

// Evaluate implements §4.6: it allocates maxPallets fresh, empty pallets,
// feeds every item — grouped by product id in genes order — to a
// placement engine that advances to the next pallet on failure, and
// reports which pallets ended up touched. itemsByProduct supplies each
// product's items in a stable order (callers should not reshuffle it
// between calls, to keep evaluation deterministic).
func Evaluate(genes []string, itemsByProduct map[string][]model.Item, dims model.PalletDimensions, maxPallets int, allowRotation bool) EvalResult {
	if maxPallets < 1 {
		maxPallets = 1
	}
	pallets := make([]*model.Pallet, maxPallets)
	engines := make([]*packing.Engine, maxPallets)
	for i := 0; i < maxPallets; i++ {
		pallets[i] = model.NewPallet(i+1, dims)
	}
	ensure := func(i int) *packing.Engine {
		if engines[i] == nil {
			engines[i] = packing.NewEngine(pallets[i], allowRotation)
		}
		return engines[i]
	}

	cursor := 0
	valid := true
	var unplaced []model.Item

itemLoop:
	for _, pid := range genes {
		for _, it := range itemsByProduct[pid] {
			for {
				eng := ensure(cursor)
				if _, ok := eng.TryPlace(it.Clone()); ok {
					break
				}
				if cursor == maxPallets-1 {
					valid = false
					unplaced = append(unplaced, it)
					break itemLoop
				}
				cursor++
			}
		}
	}

	var touched []*model.Pallet
	for _, p := range pallets {
		if len(p.Items) > 0 {
			touched = append(touched, p)
		}
	}

	return EvalResult{Pallets: touched, Unplaced: unplaced, Valid: valid}
}

// Score computes the three §4.6 objectives (het, comp, vol) over the
// result's touched pallets against k distinct product ids.
func Score(res EvalResult, k int) (het, comp, vol float64) {
	if len(res.Pallets) == 0 || k == 0 {
		return 0, 0, 0
	}
	var hetSum, compSum, volSum float64
	for _, p := range res.Pallets {
		hetSum += float64(p.ProductTypeCount()) / float64(k)
		volSum += p.VolumeUtilization()
		compSum += palletCompactness(p)
	}
	n := float64(len(res.Pallets))
	return hetSum / n, compSum / n, volSum / n
}

// palletCompactness averages the per-item contact ratio over one pallet's
// items, per §4.6's contact-area definition.
func palletCompactness(p *model.Pallet) float64 {
	return ItemsCompactness(p.Items)
}

// ItemsCompactness averages the per-item contact ratio over an arbitrary
// set of already-placed items. Exported so reporting code can recompute a
// single committed pallet's compactness without re-running the search.
func ItemsCompactness(items []model.Item) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for i, it := range items {
		sum += contactRatio(it, items, i)
	}
	return sum / float64(len(items))
}

// contactRatio computes item I's in-contact surface area (floor or
// item-to-item on the bottom face, plus item-to-item on the four side
// faces) divided by its full surface area. idx is I's index within items,
// so I is never compared against itself.
func contactRatio(it model.Item, items []model.Item, idx int) float64 {
	box := it.AABB()
	cl, cw, _ := it.CurrentExtents()

	var floorContact float64
	if it.Z <= geometry.Epsilon {
		floorContact = cl * cw
	} else {
		for j, other := range items {
			if j == idx {
				continue
			}
			otherExtents := other.AABB()
			if math.Abs(it.Z-otherExtents.Max.Z) < geometry.Epsilon {
				floorContact += geometry.XYOverlapArea(box, otherExtents)
			}
		}
	}

	var sideContact float64
	for j, other := range items {
		if j == idx {
			continue
		}
		ob := other.AABB()
		if math.Abs(box.Max.X-ob.Min.X) < geometry.Epsilon || math.Abs(ob.Max.X-box.Min.X) < geometry.Epsilon {
			sideContact += geometry.YOverlapLength(box, ob) * geometry.ZOverlapLength(box, ob)
		}
		if math.Abs(box.Max.Y-ob.Min.Y) < geometry.Epsilon || math.Abs(ob.Max.Y-box.Min.Y) < geometry.Epsilon {
			sideContact += geometry.XOverlapLength(box, ob) * geometry.ZOverlapLength(box, ob)
		}
	}

	surface := it.SurfaceArea()
	if surface == 0 {
		return 0
	}
	return (floorContact + sideContact) / surface
}
