package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Fyyrerde4xhsj/TapNow/database"
	"github.com/Fyyrerde4xhsj/TapNow/models"
	"github.com/Fyyrerde4xhsj/TapNow/utils"
)

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutHandler revokes the given refresh token and blacklists the access
// token JTI from the Authorization header, if one is present.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.RefreshToken == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "refresh_token is required"})
		return
	}

	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		if claims, err := utils.ValidateAccessToken(tokenStr); err == nil {
			if jti, ok := claims["jti"].(string); ok && jti != "" {
				var ttl time.Duration
				if expRaw, ok := claims["exp"].(float64); ok {
					ttl = time.Until(time.Unix(int64(expRaw), 0))
				}
				if ttl < 0 {
					ttl = 0
				}
				_ = utils.RevokeJTI(jti, ttl)
			}
		}
		// A bad access token does not block refresh-token revocation.
	}

	// Revoke unconditionally; a missing row still reports success so that
	// token ids cannot be enumerated. A store failure is logged but not
	// surfaced for the same reason.
	res := database.DB.Model(&models.RefreshToken{}).Where("id = ?", req.RefreshToken).Update("revoked", true)
	if res.Error != nil {
		log.Printf("[logout] failed to revoke refresh token: %v", res.Error)
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
