package users

import (
	"net/http"

	"github.com/Fyyrerde4xhsj/TapNow/utils"
)

// InfoHandler returns the authenticated user's current state. Energy is
// reconciled and persisted as part of the read, so repeated polling never
// double-counts the elapsed interval.
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Authentication required.", Code: utils.CodeAuthRequired})
		return
	}

	user, err := ledger.ReadWithRefill(r.Context(), userID)
	if err != nil {
		writeGameError(w, err, nil)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data:    map[string]interface{}{"user": user.Snapshot()},
	})
}
