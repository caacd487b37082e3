package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatesRoundTrip(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetTaskStates([]TaskState{{ID: 0}, {ID: 1, Completed: true}}))

	states, err := u.TaskStates()
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.False(t, states[0].Completed)
	assert.True(t, states[1].Completed)
}

func TestTaskStatesEmptyColumn(t *testing.T) {
	u := &User{}
	states, err := u.TaskStates()
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestSnapshotOmitsSecrets(t *testing.T) {
	u := &User{ID: 1, Username: "player1", PasswordHash: "hash", Points: 42, Version: 3}
	snap := u.Snapshot()

	assert.Equal(t, int64(42), snap["points"])
	_, hasHash := snap["passwordHash"]
	assert.False(t, hasHash)
	_, hasVersion := snap["version"]
	assert.False(t, hasVersion)
}

func TestSnapshotToleratesCorruptTasks(t *testing.T) {
	u := &User{Tasks: "{not json"}
	snap := u.Snapshot()
	assert.Equal(t, []TaskState{}, snap["tasks"])
}
