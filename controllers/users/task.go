package users

import (
	"encoding/json"
	"net/http"

	"github.com/Fyyrerde4xhsj/TapNow/utils"
)

type TaskRequest struct {
	TaskID *int  `json:"taskId"`
	Reward int64 `json:"reward"`
}

// TaskHandler marks a catalog task as completed and credits its reward. A
// task pays out at most once per user; replays get a conflict with the
// current snapshot.
func TaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Authentication required.", Code: utils.CodeAuthRequired})
		return
	}

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.TaskID == nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "taskId is required", Code: utils.CodeInvalidParams})
		return
	}

	user, err := ledger.CompleteTask(r.Context(), userID, *req.TaskID, req.Reward)
	if err != nil {
		writeGameError(w, err, user)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Task completed",
		Data:    map[string]interface{}{"user": user.Snapshot()},
	})
}
