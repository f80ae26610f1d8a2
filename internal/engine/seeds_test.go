package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletopt/internal/model"
)

func TestSeedOrderingsProducesTenPermutations(t *testing.T) {
	items := map[string][]model.Item{
		"A": {{ProductID: "A", L: 100, W: 100, H: 100, Weight: 1}},
		"B": {{ProductID: "B", L: 200, W: 200, H: 200, Weight: 5}, {ProductID: "B", L: 200, W: 200, H: 200, Weight: 5}},
		"C": {{ProductID: "C", L: 50, W: 50, H: 50, Weight: 0.5}},
	}
	stats := BuildProductStats(items)
	orderings := SeedOrderings(stats)
	require.Len(t, orderings, 10)
	for _, ord := range orderings {
		require.Len(t, ord, 3)
		require.ElementsMatch(t, []string{"A", "B", "C"}, ord)
	}
}

func TestSeedOrderingsAscendingDescendingAreReversed(t *testing.T) {
	items := map[string][]model.Item{
		"A": {{ProductID: "A", L: 100, W: 100, H: 100, Weight: 1}},
		"B": {{ProductID: "B", L: 200, W: 200, H: 200, Weight: 9}},
	}
	stats := BuildProductStats(items)
	orderings := SeedOrderings(stats)
	// weight metric is first: orderings[0] ascending, orderings[1] descending.
	require.Equal(t, []string{"A", "B"}, orderings[0])
	require.Equal(t, []string{"B", "A"}, orderings[1])
}

func TestSeedOrderingsTieBreaksLexicographically(t *testing.T) {
	items := map[string][]model.Item{
		"B": {{ProductID: "B", L: 100, W: 100, H: 100, Weight: 1}},
		"A": {{ProductID: "A", L: 100, W: 100, H: 100, Weight: 1}},
	}
	stats := BuildProductStats(items)
	orderings := SeedOrderings(stats)
	require.Equal(t, []string{"A", "B"}, orderings[0])
}
