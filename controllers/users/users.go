package users

import (
	"errors"
	"log"
	"net/http"

	"github.com/Fyyrerde4xhsj/TapNow/game"
	"github.com/Fyyrerde4xhsj/TapNow/models"
	"github.com/Fyyrerde4xhsj/TapNow/utils"
)

var ledger *game.Ledger

// Init wires the shared ledger into this package's handlers. Must be called
// once from main before the router starts serving.
func Init(l *game.Ledger) {
	ledger = l
}

// writeGameError maps ledger errors onto HTTP responses. A non-nil user is
// echoed as a snapshot so the client can resync to the authoritative state
// that caused the rejection.
func writeGameError(w http.ResponseWriter, err error, user *models.User) {
	status := http.StatusInternalServerError
	code := ""
	msg := "Server error"

	// Claimed constants that differ from the server's are worth flagging:
	// a legitimate client never sends them.
	if errors.Is(err, game.ErrTapParams) || errors.Is(err, game.ErrRewardMismatch) {
		if user != nil {
			log.Printf("[manipulation] user=%d: %v", user.ID, err)
		} else {
			log.Printf("[manipulation] %v", err)
		}
	}

	switch {
	case errors.Is(err, game.ErrUserNotFound):
		status, code, msg = http.StatusNotFound, utils.CodeUserNotFound, "User not found"
	case errors.Is(err, game.ErrTapParams):
		status, code, msg = http.StatusBadRequest, utils.CodeInvalidParams, "Invalid tap parameters"
	case errors.Is(err, game.ErrNoEnergy):
		status, code, msg = http.StatusBadRequest, utils.CodeNoEnergy, "Not enough energy"
	case errors.Is(err, game.ErrRewardMismatch):
		status, code, msg = http.StatusBadRequest, utils.CodeRewardMismatch, "Invalid task reward"
	case errors.Is(err, game.ErrUnknownTask):
		status, code, msg = http.StatusBadRequest, utils.CodeUnknownTask, "Unknown task"
	case errors.Is(err, game.ErrTaskDone):
		status, code, msg = http.StatusConflict, utils.CodeTaskDone, "Task already completed"
	case errors.Is(err, game.ErrMinWithdrawal):
		status, code, msg = http.StatusBadRequest, utils.CodeMinWithdrawal, "Amount is below the minimum withdrawal"
	case errors.Is(err, game.ErrInsufficientPoints):
		status, code, msg = http.StatusBadRequest, utils.CodeNoPoints, "Insufficient points"
	case errors.Is(err, game.ErrPaypalEmail),
		errors.Is(err, game.ErrWireDetails),
		errors.Is(err, game.ErrCryptoAddress),
		errors.Is(err, game.ErrUPIFormat),
		errors.Is(err, game.ErrUnknownMethod):
		status, code, msg = http.StatusBadRequest, utils.CodeBadDetails, err.Error()
	case errors.Is(err, game.ErrConflict):
		status, code, msg = http.StatusConflict, utils.CodeConflict, "Concurrent update, please retry"
	}

	resp := utils.APIResponse{Success: false, Message: msg, Code: code}
	if user != nil {
		resp.Data = map[string]interface{}{"user": user.Snapshot()}
	}
	utils.WriteJSON(w, status, resp)
}
