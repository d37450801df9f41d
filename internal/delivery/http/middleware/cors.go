package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods = "GET,OPTIONS"
	corsAllowHeaders = "Accept, Content-Type"
	corsMaxAge       = "86400"
)

// CORS returns a handler that adds CORS headers for allowed origins. The
// read API only ever serves GET, so the advertised method list is fixed.
// "*" in allowedOrigins admits every origin. Preflight OPTIONS requests
// pass through to the routes, which answer them with 200.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAny := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		o = strings.TrimSuffix(o, "/")
		if o == "*" {
			allowAny = true
			continue
		}
		if o != "" {
			allowed[o] = struct{}{}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		_, ok := allowed[origin]
		if origin != "" && (ok || allowAny) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			}
		}
		next.ServeHTTP(w, r)
	})
}
