package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletopt/internal/model"
)

func buildItems(t *testing.T, perProduct, products int) map[string][]model.Item {
	t.Helper()
	items := make(map[string][]model.Item)
	names := []string{"A", "B", "C", "D", "E"}
	for p := 0; p < products; p++ {
		pid := names[p]
		for i := 0; i < perProduct; i++ {
			items[pid] = append(items[pid], model.Item{
				ProductID: pid, ItemID: p*perProduct + i,
				L: 200, W: 150, H: 100, Weight: 2,
			})
		}
	}
	return items
}

func TestSearchPlacesAllItemsWhenBudgetIsGenerous(t *testing.T) {
	items := buildItems(t, 5, 3)
	dims := model.DefaultPalletDimensions()
	settings := model.GASettings{PopulationSize: 15, Mu: 5, Lambda: 10, CrossoverProb: 0.7, MaxGenerations: 5, StagnationLimit: 3}
	rng := rand.New(rand.NewSource(42))

	result := Search(items, 3, dims, 2, true, settings, rng)
	require.True(t, result.Found)
	placed := 0
	for _, p := range result.Pallets {
		placed += len(p.Items)
	}
	require.Equal(t, 15, placed)
	require.Empty(t, result.Unplaced)
}

func TestSearchFailsWithNoBudget(t *testing.T) {
	items := buildItems(t, 20, 1)
	dims := model.PalletDimensions{Length: 10, Width: 10, Height: 10}
	settings := model.GASettings{PopulationSize: 12, Mu: 4, Lambda: 8, CrossoverProb: 0.7, MaxGenerations: 3, StagnationLimit: 2}
	rng := rand.New(rand.NewSource(42))

	result := Search(items, 1, dims, 1, false, settings, rng)
	require.False(t, result.Found)
}

func TestSearchIsDeterministicForAFixedSeed(t *testing.T) {
	dims := model.DefaultPalletDimensions()
	settings := model.GASettings{PopulationSize: 15, Mu: 5, Lambda: 10, CrossoverProb: 0.7, MaxGenerations: 5, StagnationLimit: 3}

	run := func() SearchResult {
		items := buildItems(t, 4, 2)
		rng := rand.New(rand.NewSource(42))
		return Search(items, 2, dims, 2, true, settings, rng)
	}

	a := run()
	b := run()
	require.Equal(t, a.Found, b.Found)
	require.Equal(t, a.Het, b.Het)
	require.Equal(t, a.Comp, b.Comp)
	require.Equal(t, a.Vol, b.Vol)
}

func TestNonDominatedSortRanksPareto(t *testing.T) {
	pop := []Individual{
		{Valid: true, Het: 0.1, Comp: 0.9, Vol: 0.9}, // dominates the rest
		{Valid: true, Het: 0.5, Comp: 0.5, Vol: 0.5},
		{Valid: false},
	}
	nonDominatedSort(pop)
	require.Equal(t, 0, pop[0].Rank)
	require.Greater(t, pop[1].Rank, pop[0].Rank)
	require.Greater(t, pop[2].Rank, pop[1].Rank)
}

func TestSelectSurvivorsRespectsMu(t *testing.T) {
	pop := []Individual{
		{Valid: true, Het: 0.1, Comp: 0.9, Vol: 0.9},
		{Valid: true, Het: 0.5, Comp: 0.5, Vol: 0.5},
		{Valid: true, Het: 0.6, Comp: 0.4, Vol: 0.4},
	}
	nonDominatedSort(pop)
	assignCrowding(pop)
	survivors := selectSurvivors(pop, 2)
	require.Len(t, survivors, 2)
}
