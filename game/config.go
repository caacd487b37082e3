package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the server-defined game constants. Values are injected from the
// environment so the task catalog and tap economics are never hardcoded in
// handlers; the client mirrors them but the server copy is authoritative.
type Config struct {
	MaxEnergy        float64
	EnergyRefillRate float64 // energy units per second of elapsed time
	PointsPerTap     int64
	EnergyPerTap     float64
	TaskReward       int64
	MinWithdrawal    int64
	TaskIDs          []int
}

// DefaultConfig returns the production constants: 1000 energy capacity
// refilling at 2/sec, 1 point and 1 energy per tap, a uniform 1000-coin task
// reward across a five-task catalog, and a 10000-coin withdrawal floor.
func DefaultConfig() Config {
	return Config{
		MaxEnergy:        1000,
		EnergyRefillRate: 2,
		PointsPerTap:     1,
		EnergyPerTap:     1,
		TaskReward:       1000,
		MinWithdrawal:    10000,
		TaskIDs:          []int{0, 1, 2, 3, 4},
	}
}

// ConfigFromEnv starts from DefaultConfig and applies env overrides.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if s := os.Getenv("MAX_ENERGY"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return cfg, fmt.Errorf("invalid MAX_ENERGY %q", s)
		}
		cfg.MaxEnergy = v
	}
	if s := os.Getenv("ENERGY_REFILL_RATE"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return cfg, fmt.Errorf("invalid ENERGY_REFILL_RATE %q", s)
		}
		cfg.EnergyRefillRate = v
	}
	if s := os.Getenv("POINTS_PER_TAP"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			return cfg, fmt.Errorf("invalid POINTS_PER_TAP %q", s)
		}
		cfg.PointsPerTap = v
	}
	if s := os.Getenv("ENERGY_PER_TAP"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return cfg, fmt.Errorf("invalid ENERGY_PER_TAP %q", s)
		}
		cfg.EnergyPerTap = v
	}
	if s := os.Getenv("TASK_REWARD"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			return cfg, fmt.Errorf("invalid TASK_REWARD %q", s)
		}
		cfg.TaskReward = v
	}
	if s := os.Getenv("MIN_WITHDRAWAL"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			return cfg, fmt.Errorf("invalid MIN_WITHDRAWAL %q", s)
		}
		cfg.MinWithdrawal = v
	}
	if s := os.Getenv("TASK_IDS"); s != "" {
		ids, err := parseTaskIDs(s)
		if err != nil {
			return cfg, err
		}
		cfg.TaskIDs = ids
	}

	return cfg, nil
}

func parseTaskIDs(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	seen := make(map[int]bool)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid task id %q in TASK_IDS", p)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate task id %d in TASK_IDS", id)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("TASK_IDS is empty")
	}
	return ids, nil
}

// RewardFor returns the reward for a catalog task id, or false when the id is
// not part of the catalog. The catalog currently pays one uniform reward.
func (c Config) RewardFor(taskID int) (int64, bool) {
	for _, id := range c.TaskIDs {
		if id == taskID {
			return c.TaskReward, true
		}
	}
	return 0, false
}
