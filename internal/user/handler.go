package user

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}

	u, err := h.Service.GetByID(r.Context(), userID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}
