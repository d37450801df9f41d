package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// allowGet wraps a handler with the api method contract: GET is served,
// OPTIONS answers the preflight with 200 and the allowed method list, and
// everything else is rejected with a JSON 405.
func allowGet(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			next(w, r)
		case http.MethodOptions:
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.WriteHeader(http.StatusOK)
		default:
			w.Header().Set("Allow", "GET, OPTIONS")
			WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

// NewRouter initializes the HTTP router with the board's API routes.
func NewRouter(boardController *BoardController) *http.ServeMux {
	mux := http.NewServeMux()

	// Method handling stays inside allowGet so unsupported methods get the
	// API's JSON 405 instead of the mux default.
	mux.HandleFunc("/api/sections/{eventID}", allowGet(boardController.GetSections))
	mux.HandleFunc("/api/sessions/{eventID}", allowGet(boardController.GetSessions))
	mux.HandleFunc("/api/sessions/{eventID}/{sectionID}", allowGet(boardController.GetSessionsBySection))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
