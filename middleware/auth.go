package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Fyyrerde4xhsj/TapNow/utils"
)

// AuthMiddleware resolves the request identity from the Bearer token and
// injects the user id into the request context. Every ledger-touching
// endpoint sits behind it; without a resolved identity the core never runs.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false, Message: "Authentication required.", Code: utils.CodeAuthRequired,
			})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

		claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			msg := "Invalid token"
			if strings.Contains(err.Error(), "expired") {
				msg = "Session expired, please log in again."
			}
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false, Message: msg, Code: utils.CodeAuthRequired,
			})
			return
		}

		userID, ok := utils.UserIDFromClaims(claims)
		if !ok || userID == 0 {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false, Message: "Invalid token", Code: utils.CodeAuthRequired,
			})
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
