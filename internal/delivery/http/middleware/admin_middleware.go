package middleware

import (
	"freightzone-backend/pkg/logger"
	"freightzone-backend/pkg/utils"
	"net/http"
)

// AdminMiddleware ensures the authenticated user has the 'admin' role.
// MUST be used AFTER AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No user found in context")
			return
		}

		if !user.IsAdmin() {
			logger.WithContext(r.Context()).Warn().Str("path", r.URL.Path).Msg("Non-admin access to admin route")
			utils.WriteError(w, http.StatusForbidden, "Forbidden: Admins only")
			return
		}

		next.ServeHTTP(w, r)
	})
}
