package packing

import (
	"github.com/piwi3910/palletopt/internal/model"
)

// Engine places items on a single pallet one at a time, using an
// extreme-point set to generate candidate coordinates and the constraint
// kernel to accept or reject each candidate, per §4.4.
type Engine struct {
	Pallet        *model.Pallet
	EPs           *ExtremePointSet
	AllowRotation bool
}

// NewEngine creates a placement engine for pallet. If the pallet already
// holds items (e.g. when resuming a partially filled pallet), the EP set
// is seeded from their top faces in addition to the origin.
func NewEngine(pallet *model.Pallet, allowRotation bool) *Engine {
	eps := NewExtremePointSet(pallet.Dims)
	eps.Insert(0, 0, 0)
	if len(pallet.Items) > 0 {
		eps.SeedFromItems(pallet.Items)
	}
	return &Engine{Pallet: pallet, EPs: eps, AllowRotation: allowRotation}
}

// orientations returns the rotation flags to try, unrotated first.
func (e *Engine) orientations() []bool {
	if e.AllowRotation {
		return []bool{false, true}
	}
	return []bool{false}
}

// TryPlace attempts to place item onto the engine's pallet. It scans
// extreme points in priority order, and for each unused point tries every
// allowed orientation, accepting the first candidate that clears bounds,
// non-overlap, support, and stability in turn. On success the item is
// appended to the pallet, the extreme point is marked used, the three
// derived extreme points are inserted, and the placed item is returned
// alongside true. If no (point, orientation) combination succeeds, it
// returns the zero Item and false, leaving the pallet untouched.
func (e *Engine) TryPlace(item model.Item) (model.Item, bool) {
	dims := e.Pallet.Dims
	for _, idx := range e.EPs.SortedIndices() {
		ep := e.EPs.At(idx)
		if ep.Used {
			continue
		}
		for _, rotated := range e.orientations() {
			candidate := item.PlaceAt(ep.X, ep.Y, ep.Z, rotated)
			box := candidate.AABB()

			if !CheckBounds(box, dims) {
				continue
			}
			if !CheckNonOverlap(box, e.Pallet.Items) {
				continue
			}
			if !CheckSupport(candidate, e.Pallet.Items) {
				continue
			}
			if !CheckStability(e.Pallet.Items, candidate, dims) {
				continue
			}

			e.EPs.MarkUsed(idx)
			e.Pallet.Add(candidate)
			cl, cw, ch := candidate.CurrentExtents()
			e.EPs.InsertDerived(candidate.X, candidate.Y, candidate.Z, cl, cw, ch)
			return candidate, true
		}
	}
	return model.Item{}, false
}
