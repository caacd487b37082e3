package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every endpoint answers with. Code carries a
// machine-readable reason so the client can render a specific UI state
// (e.g. NO_ENERGY) without parsing the human-readable message.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Reason codes surfaced in APIResponse.Code.
const (
	CodeAuthRequired   = "AUTH_REQUIRED"
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeInvalidParams  = "INVALID_PARAMS"
	CodeNoEnergy       = "NO_ENERGY"
	CodeUnknownTask    = "UNKNOWN_TASK"
	CodeTaskDone       = "TASK_DONE"
	CodeRewardMismatch = "REWARD_MISMATCH"
	CodeMinWithdrawal  = "MIN_WITHDRAWAL"
	CodeNoPoints       = "NO_POINTS"
	CodeBadDetails     = "BAD_DETAILS"
	CodeConflict       = "CONFLICT"
)

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
