package packing

import (
	"math"

	"github.com/piwi3910/palletopt/internal/geometry"
	"github.com/piwi3910/palletopt/internal/model"
)

// InsetDelta is the inward offset (toward an item's centroid) applied to
// its base corners before testing them against a supporting footprint,
// per §4.3.
const InsetDelta = 10.0 // mm

// CheckBounds reports whether a candidate box lies within the pallet
// extents (with epsilon tolerance).
func CheckBounds(candidate geometry.Box, dims model.PalletDimensions) bool {
	return candidate.Within(dims.Extent())
}

// CheckNonOverlap reports whether a candidate box overlaps none of the
// already-placed items.
func CheckNonOverlap(candidate geometry.Box, existing []model.Item) bool {
	for _, it := range existing {
		if candidate.Overlaps(it.AABB()) {
			return false
		}
	}
	return true
}

// CheckSupport reports whether a candidate item's placement is supported,
// per §4.3. Items resting on the pallet floor (z <= epsilon) are always
// supported. Otherwise, the set of items whose top face is flush with the
// candidate's bottom face is examined: the candidate is supported if its
// footprint is sufficiently covered by that set AND enough of its
// (inset) base corners land within some supporting item's footprint.
func CheckSupport(candidate model.Item, existing []model.Item) bool {
	if candidate.Z <= geometry.Epsilon {
		return true
	}

	var support []model.Item
	for _, j := range existing {
		_, _, jch := j.CurrentExtents()
		if math.Abs(candidate.Z-(j.Z+jch)) < geometry.Epsilon {
			support = append(support, j)
		}
	}
	if len(support) == 0 {
		return false
	}

	candBox := candidate.AABB()
	cl, cw, _ := candidate.CurrentExtents()
	footprintArea := cl * cw

	var supportedArea float64
	for _, j := range support {
		supportedArea += geometry.XYOverlapArea(candBox, j.AABB())
	}
	ratio := 0.0
	if footprintArea > 0 {
		ratio = supportedArea / footprintArea
	}

	vertices := 0
	for _, corner := range insetBaseCorners(candidate) {
		for _, j := range support {
			jb := j.AABB()
			if corner.X >= jb.Min.X-geometry.Epsilon && corner.X <= jb.Max.X+geometry.Epsilon &&
				corner.Y >= jb.Min.Y-geometry.Epsilon && corner.Y <= jb.Max.Y+geometry.Epsilon {
				vertices++
				break
			}
		}
	}

	// Evaluated in order of most-to-least permissive; the first predicate
	// that succeeds is sufficient (pure early-exit, same semantic union).
	switch {
	case ratio >= 0.75 && vertices >= 2:
		return true
	case ratio >= 0.50 && vertices >= 3:
		return true
	case ratio >= 0.40 && vertices >= 4:
		return true
	default:
		return false
	}
}

// insetBaseCorners returns the item's four base corners, each pulled
// InsetDelta mm toward the item's centroid.
func insetBaseCorners(it model.Item) []geometry.Vec3 {
	cl, cw, _ := it.CurrentExtents()
	d := InsetDelta
	return []geometry.Vec3{
		{X: it.X + d, Y: it.Y + d, Z: it.Z},
		{X: it.X + cl - d, Y: it.Y + d, Z: it.Z},
		{X: it.X + d, Y: it.Y + cw - d, Z: it.Z},
		{X: it.X + cl - d, Y: it.Y + cw - d, Z: it.Z},
	}
}

// StabilityTolerance implements the dynamic tolerance schedule of §4.5:
// looser while the stack is short (letting early items spread out), then
// tightening as more items accumulate.
func StabilityTolerance(count int) float64 {
	switch {
	case count < 3:
		return 0.99
	case count < 5:
		return 0.70
	case count < 10:
		return 0.50
	default:
		return 0.40
	}
}

// CheckStability reports whether hypothetically committing candidate to a
// pallet already holding existing would keep the pallet's weighted center
// of mass within the dynamic tolerance of the pallet center, per §4.3/4.5.
// This is a pure function: it never mutates existing or candidate.
func CheckStability(existing []model.Item, candidate model.Item, dims model.PalletDimensions) bool {
	if dims.Length == 0 || dims.Width == 0 {
		return true
	}

	all := make([]geometry.WeightedBox, 0, len(existing)+1)
	for _, it := range existing {
		all = append(all, geometry.WeightedBox{Box: it.AABB(), Weight: it.Weight})
	}
	all = append(all, geometry.WeightedBox{Box: candidate.AABB(), Weight: candidate.Weight})

	tau := StabilityTolerance(len(all))
	fallback := geometry.Vec3{X: dims.Length / 2, Y: dims.Width / 2}
	com := geometry.CenterOfMass(all, fallback)

	dx := math.Abs(com.X-dims.Length/2) / (dims.Length / 2)
	dy := math.Abs(com.Y-dims.Width/2) / (dims.Width / 2)
	return dx <= tau && dy <= tau
}
