package orderio

import (
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/palletopt/internal/engine"
	"github.com/piwi3910/palletopt/internal/model"
)

// WriteSummary appends one row per result to w, per §6's summary schema.
// algorithm names the search strategy that produced the results (surfaced
// for readers comparing runs, not interpreted here).
func WriteSummary(w io.Writer, algorithm string, results []model.OrderResult, header bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if header {
		if err := cw.Write([]string{
			"OrderId", "Algorithm", "ItemCount", "ProductTypes", "Entropy", "Complexity",
			"PalletsUsed", "ItemsPlaced", "ItemsUnplaced", "AvgVolumeUtilization",
			"AvgHeightUtilization", "TotalWeight", "AvgHeterogeneity", "AvgCompactness", "ExecutionTimeMs",
		}); err != nil {
			return err
		}
	}

	for _, r := range results {
		row := []string{
			r.OrderID,
			algorithm,
			strconv.Itoa(r.ItemCount),
			strconv.Itoa(r.ProductTypes),
			formatF(r.Entropy, 4),
			string(r.Complexity),
			strconv.Itoa(len(r.Pallets)),
			strconv.Itoa(r.ItemsPlaced()),
			strconv.Itoa(r.ItemsUnplaced()),
			formatF(r.AvgVolumeUtilization(), 4),
			formatF(r.AvgHeightUtilization(), 4),
			formatF(r.TotalWeight(), 2),
			formatF(r.Heterogeneity, 4),
			formatF(r.Compactness, 4),
			formatF(r.ExecutionMs, 2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("orderio: writing summary row for %s: %w", r.OrderID, err)
		}
	}
	return nil
}

// WriteDetail appends one row per pallet to w, per §6's per-order detail
// schema.
func WriteDetail(w io.Writer, results []model.OrderResult, header bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if header {
		if err := cw.Write([]string{
			"OrderId", "PalletId", "ItemCount", "ProductTypes", "VolumeUtilization",
			"HeightUtilization", "Weight", "Heterogeneity", "Compactness", "Products",
		}); err != nil {
			return err
		}
	}

	for _, r := range results {
		k := r.ProductTypes
		for _, p := range r.Pallets {
			het := 0.0
			if k > 0 {
				het = float64(len(p.ProductCounts())) / float64(k)
			}
			row := []string{
				r.OrderID,
				strconv.Itoa(p.PalletID),
				strconv.Itoa(len(p.Items)),
				strconv.Itoa(len(p.ProductCounts())),
				formatF(p.VolumeUtilization(), 4),
				formatF(p.HeightUtilization(), 4),
				formatF(p.Weight(), 2),
				formatF(het, 4),
				formatF(engine.ItemsCompactness(p.Items), 4),
				productSummary(p.ProductCounts()),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("orderio: writing detail row for %s pallet %d: %w", r.OrderID, p.PalletID, err)
			}
		}
	}
	return nil
}

// WritePlacements appends one row per placed item to w, per §6's
// placements schema. When withColor is true, each row carries a Color
// field derived from the item's product id via a golden-angle HSL hue
// walk, for the (out-of-scope) 3D visualizer to render consistent colors
// per product across runs.
func WritePlacements(w io.Writer, results []model.OrderResult, header, withColor bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	cols := []string{
		"OrderId", "PalletId", "ItemId", "ProductId", "X", "Y", "Z",
		"Length", "Width", "Height", "Weight", "IsRotated",
		"PalletLength", "PalletWidth", "PalletMaxHeight",
	}
	if withColor {
		cols = append(cols, "Color")
	}
	if header {
		if err := cw.Write(cols); err != nil {
			return err
		}
	}

	for _, r := range results {
		for _, p := range r.Pallets {
			for _, it := range p.Items {
				cl, cw2, ch := it.CurrentExtents()
				row := []string{
					r.OrderID,
					strconv.Itoa(p.PalletID),
					strconv.Itoa(it.ItemID),
					it.ProductID,
					formatF(it.X, 2),
					formatF(it.Y, 2),
					formatF(it.Z, 2),
					formatF(cl, 2),
					formatF(cw2, 2),
					formatF(ch, 2),
					formatF(it.Weight, 2),
					strconv.FormatBool(it.Rotated),
					formatF(p.Dims.Length, 2),
					formatF(p.Dims.Width, 2),
					formatF(p.Dims.Height, 2),
				}
				if withColor {
					row = append(row, ProductColor(it.ProductID))
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("orderio: writing placement row for %s item %d: %w", r.OrderID, it.ItemID, err)
				}
			}
		}
	}
	return nil
}

// productSummary renders a product-count map as a
// `pid(count);pid(count);...` string, in lexicographic order for
// determinism. No quote characters are added: the CSV writer quotes the
// field only when a product id contains a comma, quote, or line break.
func productSummary(counts map[string]int) string {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s(%d)", id, counts[id])
	}
	return strings.Join(parts, ";")
}

// goldenAngle is the hue step (degrees) that spreads successive hues as
// evenly as possible around the color wheel without needing to know the
// total product count in advance.
const goldenAngle = 137.508

// ProductColor derives a stable "#RRGGBB" color for a product id: its
// FNV-1a hash picks a starting hue bucket, then the golden-angle step
// spreads near-hash-collisions apart, at fixed saturation/lightness.
func ProductColor(productID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(productID))
	hue := math.Mod(float64(h.Sum32())*goldenAngle, 360.0)
	r, g, b := hslToRGB(hue, 0.65, 0.55)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hslToRGB converts HSL (hue in degrees, saturation/lightness in [0,1])
// to 8-bit RGB.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60.0
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r1, g1, b1 float64
	switch {
	case hp < 1:
		r1, g1, b1 = c, x, 0
	case hp < 2:
		r1, g1, b1 = x, c, 0
	case hp < 3:
		r1, g1, b1 = 0, c, x
	case hp < 4:
		r1, g1, b1 = 0, x, c
	case hp < 5:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	m := l - c/2
	return uint8(math.Round((r1 + m) * 255)), uint8(math.Round((g1 + m) * 255)), uint8(math.Round((b1 + m) * 255))
}

func formatF(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
