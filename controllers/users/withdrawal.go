package users

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Fyyrerde4xhsj/TapNow/game"
	"github.com/Fyyrerde4xhsj/TapNow/models"
	"github.com/Fyyrerde4xhsj/TapNow/utils"
)

type WithdrawalRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
	game.WithdrawalDetails
}

// WithdrawalHandler debits points and queues a Pending payout in a single
// transaction. The debit and the withdrawal row commit together or not at all.
func WithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Authentication required.", Code: utils.CodeAuthRequired})
		return
	}

	var req WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.Method == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "method is required", Code: utils.CodeInvalidParams})
		return
	}

	user, wd, err := ledger.RequestWithdrawal(r.Context(), userID, req.Amount, req.Method, req.WithdrawalDetails)
	if err != nil {
		writeGameError(w, err, user)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Withdrawal request submitted",
		Data: map[string]interface{}{
			"withdrawal": withdrawalView(wd),
			"user":       user.Snapshot(),
		},
	})
}

// ListWithdrawalHandler returns the user's payout history, oldest first.
func ListWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Authentication required.", Code: utils.CodeAuthRequired})
		return
	}

	list, err := ledger.Withdrawals(r.Context(), userID)
	if err != nil {
		writeGameError(w, err, nil)
		return
	}

	out := make([]map[string]interface{}, 0, len(list))
	for i := range list {
		out = append(out, withdrawalView(&list[i]))
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data:    map[string]interface{}{"withdrawals": out},
	})
}

func withdrawalView(wd *models.Withdrawal) map[string]interface{} {
	var details game.WithdrawalDetails
	_ = json.Unmarshal([]byte(wd.Details), &details)
	return map[string]interface{}{
		"id":         wd.ID,
		"amount":     wd.Amount,
		"method":     wd.Method,
		"details":    details,
		"status":     wd.Status,
		"created_at": wd.CreatedAt.UTC().Format(time.RFC3339),
	}
}
