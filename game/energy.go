package game

// Refill computes the current energy for a user whose stored energy was last
// reconciled at lastUpdate (unix seconds). Accrual is lazy: no background
// ticker exists, so energy is only ever current at the moment of a read.
//
// Negative elapsed time (clock skew, stale timestamp) must never drain
// energy, so it is clamped to zero. The result is capped at capacity.
//
// Every caller that persists the returned value must stamp lastEnergyUpdate
// with the same `now` in the same write, or the next read re-credits the
// elapsed interval. Ledger.mutate bundles both.
func Refill(lastUpdate int64, current, capacity, rate float64, now int64) float64 {
	elapsed := now - lastUpdate
	if elapsed < 0 {
		elapsed = 0
	}
	refilled := current + float64(elapsed)*rate
	if refilled > capacity {
		return capacity
	}
	return refilled
}
