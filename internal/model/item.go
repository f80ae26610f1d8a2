// Package model holds the data types shared across the packing engine: items,
// pallets, orders, evolutionary individuals, and placement results. It carries
// no packing logic of its own — geometry lives in internal/geometry and
// constraint/search logic lives in internal/packing and internal/engine.
package model

import "github.com/piwi3910/palletopt/internal/geometry"

// Item is a single box to be palletized. L, W, H, and Weight are the nominal
// (unrotated) extents and identity is immutable once constructed; Position
// and Rotated are set only while the item is placed on a pallet.
type Item struct {
	ProductID string
	ItemID    int

	L, W, H float64 // mm
	Weight  float64 // kg

	X, Y, Z float64
	Rotated bool
	Placed  bool
}

// Volume returns the nominal (rotation-independent) box volume.
func (it Item) Volume() float64 {
	return it.L * it.W * it.H
}

// CurrentExtents returns the item's effective (length, width, height) given
// its current rotation: a 90-degree rotation about Z swaps L and W.
func (it Item) CurrentExtents() (cl, cw, ch float64) {
	if it.Rotated {
		return it.W, it.L, it.H
	}
	return it.L, it.W, it.H
}

// SurfaceArea returns the full surface area of the item's current (rotated
// or not) bounding box: 2(cl*cw + cl*ch + cw*ch).
func (it Item) SurfaceArea() float64 {
	cl, cw, ch := it.CurrentExtents()
	return 2 * (cl*cw + cl*ch + cw*ch)
}

// AABB returns the item's axis-aligned bounding box at its current position
// and rotation.
func (it Item) AABB() geometry.Box {
	cl, cw, ch := it.CurrentExtents()
	return geometry.NewBox(geometry.Vec3{X: it.X, Y: it.Y, Z: it.Z}, geometry.Vec3{X: cl, Y: cw, Z: ch})
}

// PlaceAt returns a copy of the item positioned at (x, y, z) with the given
// rotation and marked as placed. Items are cloned before placement so
// exploring a candidate position never mutates committed state.
func (it Item) PlaceAt(x, y, z float64, rotated bool) Item {
	it.X, it.Y, it.Z = x, y, z
	it.Rotated = rotated
	it.Placed = true
	return it
}

// Clone returns a copy of the item with its placement state reset, as if
// freshly constructed from the order source.
func (it Item) Clone() Item {
	it.X, it.Y, it.Z = 0, 0, 0
	it.Rotated = false
	it.Placed = false
	return it
}
