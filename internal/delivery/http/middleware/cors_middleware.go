package middleware

import (
	"net/http"
	"strings"

	"freightzone-backend/config"
)

// NewCORSMiddleware allows the comma separated origins in ALLOWED_ORIGIN.
// "*" allows any origin.
func NewCORSMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	allowAny := false
	allowed := map[string]bool{}
	for _, o := range strings.Split(cfg.AllowedOrigin, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAny = true
		} else if o != "" {
			allowed[o] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAny:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
