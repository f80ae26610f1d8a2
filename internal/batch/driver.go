// Package batch implements the parallel per-order driver (spec component
// C9): it fans an order list out across a bounded worker pool, derives a
// deterministic seed per order, and collects results without ever
// reordering them relative to scheduling.
package batch

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/palletopt/internal/engine"
	"github.com/piwi3910/palletopt/internal/model"
	"github.com/piwi3910/palletopt/internal/packing"
)

// minParallelism and maxParallelism clamp the requested worker count, per
// §4.9's "clamped to [2, 8] by default or explicit" rule.
const (
	minParallelism = 2
	maxParallelism = 8
)

// ClampParallelism clamps d into [minParallelism, maxParallelism].
func ClampParallelism(d int) int {
	if d < minParallelism {
		return minParallelism
	}
	if d > maxParallelism {
		return maxParallelism
	}
	return d
}

// Config parameterizes one batch run.
type Config struct {
	BaseSeed      int64
	Parallelism   int
	BaseMaxPallet int
	AllowRotation bool
	PalletDims    model.PalletDimensions
	GA            model.GASettings

	// Splitter separates each order's items into pallets a prior phase
	// already committed and residuals still needing placement, per §9's
	// design note. A nil Splitter defaults to packing.IdentitySplitter{},
	// which commits nothing and forwards every item as a residual.
	Splitter packing.ResidualSplitter
}

// OrderOutcome pairs an order's result with any error encountered while
// processing it; per §7, a single order's failure never aborts the batch.
type OrderOutcome struct {
	OrderID string
	Result  model.OrderResult
	Err     error
}

// Run executes the per-order pipeline (§4.6 through §4.7) over orders
// concurrently, bounded by cfg.Parallelism, and returns outcomes sorted
// by order id — independent of execution interleaving, per §4.9/§5.
func Run(ctx context.Context, orders []model.Order, cfg Config) []OrderOutcome {
	d := ClampParallelism(cfg.Parallelism)
	outcomes := make([]OrderOutcome, len(orders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d)

	for i, order := range orders {
		i, order := i, order
		g.Go(func() error {
			outcomes[i] = processOrder(gctx, order, cfg)
			return nil
		})
	}
	_ = g.Wait() // per-order failures are recorded in outcomes, never propagated

	sort.Slice(outcomes, func(a, b int) bool { return outcomes[a].OrderID < outcomes[b].OrderID })
	return outcomes
}

// RunSequential processes orders one at a time with no worker pool, for
// debugging and for scenarios that want to observe per-order timing
// without scheduling noise. It produces results identical to Run, per
// §5's determinism guarantee (d does not affect results, only wall-clock).
func RunSequential(_ context.Context, orders []model.Order, cfg Config) []OrderOutcome {
	outcomes := make([]OrderOutcome, len(orders))
	for i, order := range orders {
		outcomes[i] = processOrder(context.Background(), order, cfg)
	}
	sort.Slice(outcomes, func(a, b int) bool { return outcomes[a].OrderID < outcomes[b].OrderID })
	return outcomes
}

// processOrder runs one order's search in isolation, recovering from any
// panic so it cannot take down sibling orders (§7's single-order
// exception handling).
func processOrder(_ context.Context, order model.Order, cfg Config) (outcome OrderOutcome) {
	outcome.OrderID = order.OrderID
	defer func() {
		if r := recover(); r != nil {
			outcome.Err = panicError{value: r}
		}
	}()

	start := time.Now()

	seed := OrderSeed(cfg.BaseSeed, order.OrderID)
	rng := rand.New(rand.NewSource(seed))

	splitter := cfg.Splitter
	if splitter == nil {
		splitter = packing.IdentitySplitter{}
	}
	packed, residual := splitter.Split(order.Items)

	itemsByProduct := make(map[string][]model.Item)
	for _, it := range residual {
		itemsByProduct[it.ProductID] = append(itemsByProduct[it.ProductID], it)
	}
	k := len(itemsByProduct)
	maxPallets := model.PalletBudget(cfg.BaseMaxPallet, len(residual))

	result := model.OrderResult{
		OrderID:      order.OrderID,
		RunID:        uuid.NewString(),
		ItemCount:    len(order.Items),
		ProductTypes: k,
		Entropy:      order.Entropy(),
		Complexity:   order.ComplexityClass(),
		Pallets:      packed,
	}

	if len(residual) == 0 {
		outcome.Result = result
		return outcome
	}

	search := engine.Search(itemsByProduct, k, cfg.PalletDims, maxPallets, cfg.AllowRotation, cfg.GA, rng)
	result.ExecutionMs = float64(time.Since(start).Microseconds()) / 1000.0

	if !search.Found {
		result.Unplaced = residual
		outcome.Result = result
		return outcome
	}

	offset := len(packed)
	for _, p := range search.Pallets {
		result.Pallets = append(result.Pallets, model.PalletResult{
			PalletID: p.ID + offset,
			Dims:     p.Dims,
			Items:    p.Items,
		})
	}
	result.Unplaced = search.Unplaced
	result.Heterogeneity = search.Het
	result.Compactness = search.Comp

	outcome.Result = result
	return outcome
}

// panicError wraps a recovered panic value as an error.
type panicError struct{ value any }

func (e panicError) Error() string {
	return fmt.Sprintf("order processing panicked: %v", e.value)
}
