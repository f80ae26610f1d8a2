package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxOverlaps(t *testing.T) {
	a := NewBox(Vec3{0, 0, 0}, Vec3{100, 100, 100})

	t.Run("disjoint on X", func(t *testing.T) {
		b := NewBox(Vec3{200, 0, 0}, Vec3{100, 100, 100})
		assert.False(t, a.Overlaps(b))
	})

	t.Run("touching within epsilon counts as disjoint", func(t *testing.T) {
		b := NewBox(Vec3{100, 0, 0}, Vec3{100, 100, 100})
		assert.False(t, a.Overlaps(b))
	})

	t.Run("overlapping by more than epsilon on all axes", func(t *testing.T) {
		b := NewBox(Vec3{50, 50, 50}, Vec3{100, 100, 100})
		assert.True(t, a.Overlaps(b))
	})

	t.Run("overlapping on X and Y but not Z short-circuits false", func(t *testing.T) {
		b := NewBox(Vec3{50, 50, 200}, Vec3{100, 100, 100})
		assert.False(t, a.Overlaps(b))
	})
}

func TestBoxWithin(t *testing.T) {
	extent := Vec3{1200, 800, 1400}

	require.True(t, NewBox(Vec3{0, 0, 0}, Vec3{1200, 800, 1400}).Within(extent))
	require.False(t, NewBox(Vec3{0, 0, 0}, Vec3{1200.2, 800, 1400}).Within(extent))
	// within epsilon slack is still considered in-bounds
	require.True(t, NewBox(Vec3{0, 0, 0}, Vec3{1200.05, 800, 1400}).Within(extent))
}

func TestCenterOfMassWeighted(t *testing.T) {
	boxes := []WeightedBox{
		{Box: NewBox(Vec3{0, 0, 0}, Vec3{100, 100, 100}), Weight: 1},
		{Box: NewBox(Vec3{200, 0, 0}, Vec3{100, 100, 100}), Weight: 1},
	}
	com := CenterOfMass(boxes, Vec3{})
	assert.InDelta(t, 150, com.X, 1e-9) // (50*1 + 250*1) / 2
}

func TestCenterOfMassZeroWeightFallsBackToPalletCenter(t *testing.T) {
	fallback := Vec3{X: 600, Y: 400, Z: 0}
	com := CenterOfMass(nil, fallback)
	assert.Equal(t, fallback, com)
}

func TestXYOverlapArea(t *testing.T) {
	a := NewBox(Vec3{0, 0, 0}, Vec3{100, 100, 50})
	b := NewBox(Vec3{50, 50, 0}, Vec3{100, 100, 50})
	assert.InDelta(t, 2500, XYOverlapArea(a, b), 1e-9)

	c := NewBox(Vec3{200, 200, 0}, Vec3{100, 100, 50})
	assert.Equal(t, 0.0, XYOverlapArea(a, c))
}
