// Package packing implements the constraint kernel, extreme-point set, and
// placement engine (spec components C3-C5): the geometric core that decides
// whether and where a single item fits on a single pallet.
package packing

import (
	"math"
	"sort"

	"github.com/piwi3910/palletopt/internal/geometry"
	"github.com/piwi3910/palletopt/internal/model"
)

// ExtremePoint is a candidate placement coordinate in pallet space.
type ExtremePoint struct {
	X, Y, Z float64
	Used    bool
}

// Priority orders extreme points bottom-first, then closer to the origin:
// lower is better.
func (ep ExtremePoint) Priority() float64 {
	return 1000*ep.Z + math.Sqrt(ep.X*ep.X+ep.Y*ep.Y)
}

// ExtremePointSet maintains the EP collection for one pallet: insertion
// with de-duplication, and a stable priority ordering over unused points.
type ExtremePointSet struct {
	dims   model.PalletDimensions
	points []ExtremePoint
}

// NewExtremePointSet creates an EP set scoped to a pallet's dimensions.
func NewExtremePointSet(dims model.PalletDimensions) *ExtremePointSet {
	return &ExtremePointSet{dims: dims}
}

// Insert adds (x, y, z) unless it lies outside the pallet bounds or an
// existing point already matches it within epsilon on all three axes.
// Returns whether the point was actually added.
func (s *ExtremePointSet) Insert(x, y, z float64) bool {
	if x < -geometry.Epsilon || y < -geometry.Epsilon || z < -geometry.Epsilon ||
		x > s.dims.Length+geometry.Epsilon || y > s.dims.Width+geometry.Epsilon || z > s.dims.Height+geometry.Epsilon {
		return false
	}
	for _, p := range s.points {
		if math.Abs(p.X-x) < geometry.Epsilon && math.Abs(p.Y-y) < geometry.Epsilon && math.Abs(p.Z-z) < geometry.Epsilon {
			return false
		}
	}
	s.points = append(s.points, ExtremePoint{X: x, Y: y, Z: z})
	return true
}

// Len returns the number of extreme points tracked, used or not.
func (s *ExtremePointSet) Len() int {
	return len(s.points)
}

// At returns the extreme point at index i.
func (s *ExtremePointSet) At(i int) ExtremePoint {
	return s.points[i]
}

// MarkUsed flags the extreme point at index i so future SortedIndices calls
// still return it (EPs are never removed) but callers skip it.
func (s *ExtremePointSet) MarkUsed(i int) {
	s.points[i].Used = true
}

// SortedIndices returns indices into the point set ordered by ascending
// priority, with ties broken by original insertion order (a stable sort
// over the already-insertion-ordered slice achieves this directly).
func (s *ExtremePointSet) SortedIndices() []int {
	idx := make([]int, len(s.points))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.points[idx[a]].Priority() < s.points[idx[b]].Priority()
	})
	return idx
}

// SeedFromItems initializes the EP set from the top-face vertices of
// already-placed items. Used when constructing a pallet from a non-empty
// item list; the common path (a fresh evaluation) instead starts from the
// single origin point via Insert(0, 0, 0).
func (s *ExtremePointSet) SeedFromItems(items []model.Item) {
	for _, it := range items {
		cl, cw, ch := it.CurrentExtents()
		top := it.Z + ch
		s.Insert(it.X, it.Y, top)
		s.Insert(it.X+cl, it.Y, top)
		s.Insert(it.X, it.Y+cw, top)
		s.Insert(it.X+cl, it.Y+cw, top)
	}
}

// InsertDerived generates and inserts the three extreme points exposed by
// placing an item of extents (cl, cw, ch) at (x, y, z): per §4.2.
func (s *ExtremePointSet) InsertDerived(x, y, z, cl, cw, ch float64) {
	s.Insert(x+cl, y, z)
	s.Insert(x, y+cw, z)
	s.Insert(x, y, z+ch)
}
