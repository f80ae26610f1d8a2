package batch

import "github.com/cespare/xxhash/v2"

// StableHash returns a deterministic, platform-independent hash of id,
// used to derive a per-order random seed that never collides with
// Go's map iteration order or process-specific hashing.
func StableHash(id string) uint64 {
	return xxhash.Sum64String(id)
}

// OrderSeed derives an order's search seed from the batch's base seed and
// the order id's stable hash, per §4.9: `base_seed + stable_hash(order_id)`.
// This guarantees the same order always gets the same seed regardless of
// worker-pool size or scheduling.
func OrderSeed(baseSeed int64, orderID string) int64 {
	return baseSeed + int64(StableHash(orderID))
}
