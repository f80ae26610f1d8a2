package model

import "github.com/piwi3910/palletopt/internal/geometry"

// Euro pallet default extents, mm.
const (
	DefaultPalletLength = 1200.0
	DefaultPalletWidth  = 800.0
	DefaultPalletHeight = 1400.0
)

// PalletDimensions is the footprint and maximum stack height of a pallet.
type PalletDimensions struct {
	Length, Width, Height float64 // mm
}

// DefaultPalletDimensions returns the Euro pallet footprint used when a
// caller does not specify one explicitly.
func DefaultPalletDimensions() PalletDimensions {
	return PalletDimensions{Length: DefaultPalletLength, Width: DefaultPalletWidth, Height: DefaultPalletHeight}
}

// Extent returns the dimensions as a geometry.Vec3 for bounds checks.
func (d PalletDimensions) Extent() geometry.Vec3 {
	return geometry.Vec3{X: d.Length, Y: d.Width, Z: d.Height}
}

// Pallet holds the ordered collection of items placed so far on one pallet.
// Insertion order is preserved and no item ever appears twice.
type Pallet struct {
	ID    int
	Dims  PalletDimensions
	Items []Item
}

// NewPallet creates an empty pallet with the given id and dimensions.
func NewPallet(id int, dims PalletDimensions) *Pallet {
	return &Pallet{ID: id, Dims: dims}
}

// Add appends a placed item to the pallet's collection.
func (p *Pallet) Add(it Item) {
	p.Items = append(p.Items, it)
}

// UsedVolume returns the sum of placed items' nominal volumes.
func (p *Pallet) UsedVolume() float64 {
	var v float64
	for _, it := range p.Items {
		v += it.Volume()
	}
	return v
}

// TotalWeight returns the sum of placed items' weights.
func (p *Pallet) TotalWeight() float64 {
	var w float64
	for _, it := range p.Items {
		w += it.Weight
	}
	return w
}

// TopHeight returns max(z + ch) over placed items, or 0 if empty.
func (p *Pallet) TopHeight() float64 {
	var top float64
	for _, it := range p.Items {
		_, _, ch := it.CurrentExtents()
		if h := it.Z + ch; h > top {
			top = h
		}
	}
	return top
}

// TotalVolume is the pallet's full geometric volume (length*width*height).
func (p *Pallet) TotalVolume() float64 {
	return p.Dims.Length * p.Dims.Width * p.Dims.Height
}

// VolumeUtilization returns used volume over the pallet's total volume.
func (p *Pallet) VolumeUtilization() float64 {
	total := p.TotalVolume()
	if total == 0 {
		return 0
	}
	return p.UsedVolume() / total
}

// HeightUtilization returns the current top height over the pallet's max
// stackable height.
func (p *Pallet) HeightUtilization() float64 {
	if p.Dims.Height == 0 {
		return 0
	}
	return p.TopHeight() / p.Dims.Height
}

// ProductTypeCount returns the number of distinct product ids present.
func (p *Pallet) ProductTypeCount() int {
	seen := make(map[string]struct{})
	for _, it := range p.Items {
		seen[it.ProductID] = struct{}{}
	}
	return len(seen)
}

// ProductCounts returns, for each distinct product id present, how many
// items of that product are on the pallet.
func (p *Pallet) ProductCounts() map[string]int {
	counts := make(map[string]int)
	for _, it := range p.Items {
		counts[it.ProductID]++
	}
	return counts
}

// CenterOfMass returns the weight-weighted center of mass of the pallet's
// placed items, falling back to the pallet's geometric center if total
// weight is zero.
func (p *Pallet) CenterOfMass() geometry.Vec3 {
	boxes := make([]geometry.WeightedBox, len(p.Items))
	for i, it := range p.Items {
		boxes[i] = geometry.WeightedBox{Box: it.AABB(), Weight: it.Weight}
	}
	fallback := geometry.Vec3{X: p.Dims.Length / 2, Y: p.Dims.Width / 2, Z: 0}
	return geometry.CenterOfMass(boxes, fallback)
}
