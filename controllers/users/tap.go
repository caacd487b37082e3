package users

import (
	"encoding/json"
	"net/http"

	"github.com/Fyyrerde4xhsj/TapNow/utils"
)

type TapRequest struct {
	Points     int64   `json:"points"`
	EnergyCost float64 `json:"energy_cost"`
}

// TapHandler applies one tap. The client reports the points and energy cost
// it applied locally; the server accepts the event only when they match its
// own constants, otherwise the authoritative snapshot is returned for resync.
func TapHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Authentication required.", Code: utils.CodeAuthRequired})
		return
	}

	var req TapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	user, err := ledger.Tap(r.Context(), userID, req.Points, req.EnergyCost)
	if err != nil {
		writeGameError(w, err, user)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Tap recorded",
		Data:    map[string]interface{}{"user": user.Snapshot()},
	})
}
