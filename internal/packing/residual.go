package packing

import "github.com/piwi3910/palletopt/internal/model"

// ResidualSplitter separates an order's items into those a prior packing
// phase already committed to pallets and those still needing placement
// ("residuals"), per §9's design note. Wiring this interface keeps the
// door open for a future layer/block constructor to replace the identity
// behavior without touching anything downstream.
type ResidualSplitter interface {
	Split(items []model.Item) (packed []model.PalletResult, residual []model.Item)
}

// IdentitySplitter is the currently-active splitter: it performs no
// pre-packing and forwards every item as a residual for the evolutionary
// search to place.
type IdentitySplitter struct{}

// Split implements ResidualSplitter by treating every item as a residual.
func (IdentitySplitter) Split(items []model.Item) (packed []model.PalletResult, residual []model.Item) {
	return nil, items
}
