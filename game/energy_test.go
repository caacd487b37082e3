package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefill(t *testing.T) {
	cases := []struct {
		name       string
		lastUpdate int64
		current    float64
		capacity   float64
		rate       float64
		now        int64
		want       float64
	}{
		{"no time elapsed", 100, 500, 1000, 2, 100, 500},
		{"partial refill", 100, 500, 1000, 2, 110, 520},
		{"caps at capacity", 100, 990, 1000, 2, 200, 1000},
		{"already full stays full", 100, 1000, 1000, 2, 500, 1000},
		{"clock went backwards", 100, 500, 1000, 2, 50, 500},
		{"zero rate", 100, 500, 1000, 0, 10000, 500},
		{"from empty", 0, 0, 1000, 2, 500, 1000},
		{"fractional rate", 100, 10, 1000, 0.5, 104, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Refill(tc.lastUpdate, tc.current, tc.capacity, tc.rate, tc.now)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRefillNeverExceedsCapacityOverLongGaps(t *testing.T) {
	// A user away for a week comes back to a full bar, not an overflow.
	got := Refill(0, 0, 1000, 2, 7*24*3600)
	assert.Equal(t, float64(1000), got)
}
