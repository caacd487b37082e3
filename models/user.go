package models

import (
	"encoding/json"
	"time"
)

// User is the authoritative ledger row for one player. Energy is not kept
// current by any background process; it is reconciled lazily from
// LastEnergyUpdate whenever the row is read. Version backs the conditional
// update the game ledger uses, so every mutation is a compare-and-swap.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash     string    `gorm:"size:255;not null" json:"-"`
	Points           int64     `gorm:"not null;default:0" json:"points"`
	Energy           float64   `gorm:"not null;default:0" json:"energy"`
	MaxEnergy        float64   `gorm:"not null;default:1000" json:"max_energy"`
	LastEnergyUpdate int64     `gorm:"not null;default:0" json:"last_energy_update"`
	Version          int64     `gorm:"not null;default:0" json:"-"`
	Tasks            string    `gorm:"type:text;not null" json:"-"`
	JoinDate         time.Time `gorm:"autoCreateTime" json:"join_date"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// TaskState is one entry of the user's materialized task set. Completed is
// monotonic: once true it never reverts.
type TaskState struct {
	ID        int  `json:"id"`
	Completed bool `json:"completed"`
}

// TaskStates decodes the serialized task set.
func (u *User) TaskStates() ([]TaskState, error) {
	if u.Tasks == "" {
		return []TaskState{}, nil
	}
	var states []TaskState
	if err := json.Unmarshal([]byte(u.Tasks), &states); err != nil {
		return nil, err
	}
	return states, nil
}

// SetTaskStates re-serializes the task set onto the row.
func (u *User) SetTaskStates(states []TaskState) error {
	raw, err := json.Marshal(states)
	if err != nil {
		return err
	}
	u.Tasks = string(raw)
	return nil
}

// Snapshot is the user state echoed back to the client on every action. The
// client keeps an optimistic copy of the same fields and must replace it with
// this one whenever they diverge.
func (u *User) Snapshot() map[string]interface{} {
	tasks, err := u.TaskStates()
	if err != nil {
		tasks = []TaskState{}
	}
	return map[string]interface{}{
		"id":               u.ID,
		"username":         u.Username,
		"points":           u.Points,
		"energy":           u.Energy,
		"maxEnergy":        u.MaxEnergy,
		"lastEnergyUpdate": u.LastEnergyUpdate,
		"joinDate":         u.JoinDate.UTC().Format(time.RFC3339),
		"tasks":            tasks,
	}
}
