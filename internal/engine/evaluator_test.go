package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletopt/internal/model"
)

func TestEvaluateSingleItemPlaces(t *testing.T) {
	dims := model.DefaultPalletDimensions()
	items := map[string][]model.Item{
		"A": {{ProductID: "A", ItemID: 1, L: 100, W: 80, H: 150, Weight: 1.0}},
	}
	res := Evaluate([]string{"A"}, items, dims, 1, false)
	require.True(t, res.Valid)
	require.Len(t, res.Pallets, 1)
	require.Len(t, res.Pallets[0].Items, 1)
	require.Empty(t, res.Unplaced)

	het, comp, vol := Score(res, 1)
	require.Equal(t, 1.0, het)
	require.Greater(t, comp, 0.0)
	require.InDelta(t, (100.0*80*150)/(1200*800*1400), vol, 1e-9)
}

func TestEvaluateOverflowsToNextPallet(t *testing.T) {
	dims := model.PalletDimensions{Length: 100, Width: 100, Height: 100}
	items := map[string][]model.Item{
		"A": {
			{ProductID: "A", ItemID: 1, L: 100, W: 100, H: 100, Weight: 1},
			{ProductID: "A", ItemID: 2, L: 100, W: 100, H: 100, Weight: 1},
		},
	}
	res := Evaluate([]string{"A"}, items, dims, 2, false)
	require.True(t, res.Valid)
	require.Len(t, res.Pallets, 2)
}

func TestEvaluateInvalidWhenBudgetExhausted(t *testing.T) {
	dims := model.PalletDimensions{Length: 100, Width: 100, Height: 100}
	items := map[string][]model.Item{
		"A": {
			{ProductID: "A", ItemID: 1, L: 100, W: 100, H: 100, Weight: 1},
			{ProductID: "A", ItemID: 2, L: 100, W: 100, H: 100, Weight: 1},
		},
	}
	res := Evaluate([]string{"A"}, items, dims, 1, false)
	require.False(t, res.Valid)
	require.Len(t, res.Unplaced, 1)
}

func TestScoreEmptyResultIsZero(t *testing.T) {
	het, comp, vol := Score(EvalResult{}, 3)
	require.Equal(t, 0.0, het)
	require.Equal(t, 0.0, comp)
	require.Equal(t, 0.0, vol)
}
