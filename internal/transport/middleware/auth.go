package middleware

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

// Authorizer resolves a bearer access token to the id of an active user.
type Authorizer interface {
	Authorize(ctx context.Context, accessToken string) (int64, error)
}

// RequireAuth rejects requests without a valid access token and puts the user id in the context.
func RequireAuth(authorizer Authorizer, h *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := h.ExtractTokenFromHeader(r)
			if token == "" {
				h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
				return
			}

			userID, err := authorizer.Authorize(r.Context(), token)
			if err != nil {
				h.Logger.Warn("auth middleware: token rejected", "error", err, "path", r.URL.Path)
				h.HandleServiceError(w, err)
				return
			}

			ctx := internal.ContextWithUserID(r.Context(), userID)
			ctx = logger.With(ctx, "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
