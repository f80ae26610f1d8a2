// Package geometry provides the axis-aligned 3D primitives shared by the
// constraint kernel, the extreme-point set, and the placement engine: box
// overlap, bounds containment, and weighted center-of-mass arithmetic.
package geometry

// Epsilon is the uniform floating-point slack used for overlap, bounds,
// same-position, and same-height comparisons across the packing engine.
// Centralized here so no call site hard-codes its own tolerance.
const Epsilon = 0.1 // mm

// Vec3 is a 3D point or extent in millimeters.
type Vec3 struct {
	X, Y, Z float64
}

// Box is an axis-aligned bounding box given by its min and max corners.
type Box struct {
	Min, Max Vec3
}

// NewBox builds a box from a minimum corner and positive extents.
func NewBox(minCorner Vec3, extent Vec3) Box {
	return Box{
		Min: minCorner,
		Max: Vec3{X: minCorner.X + extent.X, Y: minCorner.Y + extent.Y, Z: minCorner.Z + extent.Z},
	}
}

// Center returns the arithmetic mean of the box's corners.
func (b Box) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Overlaps reports whether two boxes overlap with epsilon slack: on every
// axis independently, Amin < Bmax-eps AND Amax > Bmin+eps. The check
// short-circuits on the first axis that fails to overlap.
func (b Box) Overlaps(other Box) bool {
	if !(b.Min.X < other.Max.X-Epsilon && b.Max.X > other.Min.X+Epsilon) {
		return false
	}
	if !(b.Min.Y < other.Max.Y-Epsilon && b.Max.Y > other.Min.Y+Epsilon) {
		return false
	}
	if !(b.Min.Z < other.Max.Z-Epsilon && b.Max.Z > other.Min.Z+Epsilon) {
		return false
	}
	return true
}

// Within reports whether the box's max corner lies inside [0, extent] on
// every axis, within epsilon tolerance. The min corner is assumed to
// already be non-negative (callers never generate negative positions).
func (b Box) Within(extent Vec3) bool {
	return b.Max.X <= extent.X+Epsilon &&
		b.Max.Y <= extent.Y+Epsilon &&
		b.Max.Z <= extent.Z+Epsilon
}

// XYOverlapArea returns the area of the XY-plane intersection of two boxes'
// footprints, or 0 if they don't overlap in the plane.
func XYOverlapArea(a, b Box) float64 {
	dx := min(a.Max.X, b.Max.X) - max(a.Min.X, b.Min.X)
	dy := min(a.Max.Y, b.Max.Y) - max(a.Min.Y, b.Min.Y)
	if dx <= 0 || dy <= 0 {
		return 0
	}
	return dx * dy
}

// XOverlapLength returns the overlap length along X of two boxes' spans.
func XOverlapLength(a, b Box) float64 {
	d := min(a.Max.X, b.Max.X) - max(a.Min.X, b.Min.X)
	if d <= 0 {
		return 0
	}
	return d
}

// YOverlapLength returns the overlap length along Y of two boxes' spans.
func YOverlapLength(a, b Box) float64 {
	d := min(a.Max.Y, b.Max.Y) - max(a.Min.Y, b.Min.Y)
	if d <= 0 {
		return 0
	}
	return d
}

// ZOverlapLength returns the overlap length along Z of two boxes' spans.
func ZOverlapLength(a, b Box) float64 {
	d := min(a.Max.Z, b.Max.Z) - max(a.Min.Z, b.Min.Z)
	if d <= 0 {
		return 0
	}
	return d
}

// WeightedBox pairs a box with a weight for center-of-mass computation.
type WeightedBox struct {
	Box    Box
	Weight float64
}

// CenterOfMass returns the weight-weighted mean of the given boxes' centers.
// If the total weight is zero, it returns the geometric center of fallback
// (used by callers to fall back to the pallet's own center).
func CenterOfMass(boxes []WeightedBox, fallback Vec3) Vec3 {
	var totalWeight float64
	var sum Vec3
	for _, wb := range boxes {
		c := wb.Box.Center()
		sum.X += c.X * wb.Weight
		sum.Y += c.Y * wb.Weight
		sum.Z += c.Z * wb.Weight
		totalWeight += wb.Weight
	}
	if totalWeight == 0 {
		return fallback
	}
	return Vec3{X: sum.X / totalWeight, Y: sum.Y / totalWeight, Z: sum.Z / totalWeight}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
