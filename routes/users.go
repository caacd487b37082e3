package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Fyyrerde4xhsj/TapNow/controllers/auth"
	"github.com/Fyyrerde4xhsj/TapNow/controllers/users"
	"github.com/Fyyrerde4xhsj/TapNow/middleware"
)

// UsersRoutes registers the session and game endpoints on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Session
	api.Handle("/register", http.HandlerFunc(auth.RegisterHandler)).Methods(http.MethodPost)
	api.Handle("/login", http.HandlerFunc(auth.LoginHandler)).Methods(http.MethodPost)
	api.Handle("/refresh", http.HandlerFunc(auth.RefreshHandler)).Methods(http.MethodPost)
	api.Handle("/logout", middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler))).Methods(http.MethodPost)

	// Authenticated state read
	api.Handle("/users/me", middleware.AuthMiddleware(http.HandlerFunc(users.InfoHandler))).Methods(http.MethodGet)

	// Game actions
	api.Handle("/users/tap", middleware.AuthMiddleware(http.HandlerFunc(users.TapHandler))).Methods(http.MethodPost)
	api.Handle("/users/task", middleware.AuthMiddleware(http.HandlerFunc(users.TaskHandler))).Methods(http.MethodPost)

	// Withdrawals
	api.Handle("/users/withdrawal", middleware.AuthMiddleware(http.HandlerFunc(users.WithdrawalHandler))).Methods(http.MethodPost)
	api.Handle("/users/withdrawals", middleware.AuthMiddleware(http.HandlerFunc(users.ListWithdrawalHandler))).Methods(http.MethodGet)
}
