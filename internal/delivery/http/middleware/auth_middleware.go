package middleware

import (
	"context"
	"errors"
	"freightzone-backend/internal/domain"
	"freightzone-backend/pkg/logger"
	"freightzone-backend/pkg/utils"
	"net/http"
)

// AuthMiddleware decodes the access token into a domain.User on the context.
// The user is built from the claims only; there is no account store here.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			if errors.Is(err, utils.ErrNoToken) {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		user := &domain.User{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		reqLogger := logger.WithUserID(*logger.WithContext(ctx), user.ID)
		ctx = logger.NewContext(ctx, &reqLogger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(domain.UserContextKey).(*domain.User)
	return user, ok && user != nil
}
