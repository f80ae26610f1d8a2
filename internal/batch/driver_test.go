package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletopt/internal/model"
	"github.com/piwi3910/palletopt/internal/packing"
)

func makeTestOrder(id string, n int) model.Order {
	var items []model.Item
	for i := 0; i < n; i++ {
		items = append(items, model.Item{ProductID: "A", ItemID: i, L: 200, W: 150, H: 100, Weight: 2})
	}
	return model.Order{OrderID: id, Items: items}
}

func testConfig() Config {
	return Config{
		BaseSeed:      42,
		Parallelism:   4,
		BaseMaxPallet: 5,
		AllowRotation: true,
		PalletDims:    model.DefaultPalletDimensions(),
		GA:            model.GASettings{PopulationSize: 15, Mu: 5, Lambda: 10, CrossoverProb: 0.7, MaxGenerations: 5, StagnationLimit: 3},
	}
}

func TestRunSortsResultsByOrderID(t *testing.T) {
	orders := []model.Order{
		makeTestOrder("order-3", 4),
		makeTestOrder("order-1", 4),
		makeTestOrder("order-2", 4),
	}
	outcomes := Run(context.Background(), orders, testConfig())
	require.Len(t, outcomes, 3)
	require.Equal(t, "order-1", outcomes[0].OrderID)
	require.Equal(t, "order-2", outcomes[1].OrderID)
	require.Equal(t, "order-3", outcomes[2].OrderID)
}

func TestRunIsDeterministicAcrossParallelism(t *testing.T) {
	orders := []model.Order{makeTestOrder("order-a", 6), makeTestOrder("order-b", 6)}

	cfgLow := testConfig()
	cfgLow.Parallelism = 1
	cfgHigh := testConfig()
	cfgHigh.Parallelism = 8

	low := Run(context.Background(), orders, cfgLow)
	high := Run(context.Background(), orders, cfgHigh)

	require.Equal(t, len(low), len(high))
	for i := range low {
		require.Equal(t, low[i].OrderID, high[i].OrderID)
		require.Equal(t, low[i].Result.ItemsPlaced(), high[i].Result.ItemsPlaced())
		require.Equal(t, low[i].Result.Heterogeneity, high[i].Result.Heterogeneity)
	}
}

func TestRunEmptyOrderYieldsZeroPlacementRate(t *testing.T) {
	orders := []model.Order{{OrderID: "empty"}}
	outcomes := Run(context.Background(), orders, testConfig())
	require.Len(t, outcomes, 1)
	require.Equal(t, 0.0, outcomes[0].Result.PlacementRate())
	require.Empty(t, outcomes[0].Result.Pallets)
}

func TestRunSequentialMatchesRun(t *testing.T) {
	orders := []model.Order{makeTestOrder("order-a", 6), makeTestOrder("order-b", 6)}

	seq := RunSequential(context.Background(), orders, testConfig())
	par := Run(context.Background(), orders, testConfig())

	require.Equal(t, len(seq), len(par))
	for i := range seq {
		require.Equal(t, seq[i].OrderID, par[i].OrderID)
		require.Equal(t, seq[i].Result.ItemsPlaced(), par[i].Result.ItemsPlaced())
	}
}

// fixedSplitter commits the first n items to a single pre-packed pallet
// and forwards the rest as residuals, to exercise the ResidualSplitter
// seam with something other than the identity behavior.
type fixedSplitter struct{ n int }

func (s fixedSplitter) Split(items []model.Item) (packed []model.PalletResult, residual []model.Item) {
	if s.n > len(items) {
		s.n = len(items)
	}
	packed = []model.PalletResult{{PalletID: 1, Dims: model.DefaultPalletDimensions(), Items: append([]model.Item(nil), items[:s.n]...)}}
	residual = append([]model.Item(nil), items[s.n:]...)
	return packed, residual
}

func TestRunHonorsResidualSplitter(t *testing.T) {
	orders := []model.Order{makeTestOrder("order-split", 6)}
	cfg := testConfig()
	cfg.Splitter = fixedSplitter{n: 2}

	outcomes := Run(context.Background(), orders, cfg)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)

	result := outcomes[0].Result
	require.NotEmpty(t, result.Pallets)
	require.Equal(t, 1, result.Pallets[0].PalletID)
	require.Len(t, result.Pallets[0].Items, 2)

	placed := 0
	for _, p := range result.Pallets {
		placed += len(p.Items)
	}
	require.Equal(t, 6, placed+len(result.Unplaced))

	for _, p := range result.Pallets[1:] {
		require.Greater(t, p.PalletID, result.Pallets[0].PalletID)
	}
}

func TestRunDefaultsToIdentitySplitterWhenNil(t *testing.T) {
	orders := []model.Order{makeTestOrder("order-identity", 4)}
	cfg := testConfig() // cfg.Splitter left nil
	outcomes := Run(context.Background(), orders, cfg)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)
	require.Equal(t, 4, outcomes[0].Result.ItemsPlaced())

	packed, residual := packing.IdentitySplitter{}.Split(orders[0].Items)
	require.Empty(t, packed)
	require.Len(t, residual, 4)
}

func TestClampParallelism(t *testing.T) {
	require.Equal(t, 2, ClampParallelism(0))
	require.Equal(t, 2, ClampParallelism(1))
	require.Equal(t, 4, ClampParallelism(4))
	require.Equal(t, 8, ClampParallelism(100))
}

func TestOrderSeedIsStablePerOrderID(t *testing.T) {
	a := OrderSeed(42, "order-1")
	b := OrderSeed(42, "order-1")
	c := OrderSeed(42, "order-2")
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}
