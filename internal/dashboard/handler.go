package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	Summary(ctx context.Context, userID int64, referenceDate time.Time) (*Summary, error)
	Today() time.Time
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

// GetSummary serves the dashboard. ?date=YYYY-MM-DD picks the reference day; default is today.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}

	ref := h.Service.Today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := calendar.ParseDate(raw)
		if err != nil {
			h.HandleServiceError(w, internal.NewValidationFieldError("date", err.Error(), internal.ErrCodeInvalidDate))
			return
		}
		ref = parsed
	}

	summary, err := h.Service.Summary(r.Context(), userID, ref)
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary.ToResponse())
}
