package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Fyyrerde4xhsj/TapNow/database"
	"github.com/Fyyrerde4xhsj/TapNow/middleware"
	"github.com/Fyyrerde4xhsj/TapNow/models"
	"github.com/Fyyrerde4xhsj/TapNow/utils"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,pwdmin"`
}

// RegisterHandler creates a new account with a full energy bar and the task
// catalog materialized as incomplete, then issues a session.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	db := database.DB
	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Username is already taken"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] DB error checking username: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	user, err := ledger.CreateUser(r.Context(), req.Username, string(hashed))
	if err != nil {
		log.Printf("[register] create user error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Registration failed, please try again"})
		return
	}

	ttl := accessTokenTTL()
	exp := time.Now().Add(ttl)
	accessToken, err := utils.GenerateAccessToken(user.ID, ttl)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create token"})
		return
	}
	refreshID, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store refresh token"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful, welcome!",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": exp.UTC().Format(time.RFC3339),
			"refresh_token": refreshID,
			"user":          user.Snapshot(),
		},
	})
}
