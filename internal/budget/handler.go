package budget

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, userID int64, dto CreateBudgetDTO) (*Evaluation, error)
	Get(ctx context.Context, userID, id int64) (*Evaluation, error)
	List(ctx context.Context, userID int64) ([]*Evaluation, error)
	Delete(ctx context.Context, userID, id int64) error
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

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}

	budgets, err := h.Service.List(r.Context(), userID)
	if err != nil {
		h.Logger.Error("ListBudgets: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, BudgetsResponse{Budgets: ToResponseSlice(budgets)})
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}

	var dto CreateBudgetDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	b, err := h.Service.Create(r.Context(), userID, dto)
	if err != nil {
		h.Logger.Error("CreateBudget: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, b.ToResponse())
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	b, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b.ToResponse())
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		h.Logger.Error("DeleteBudget: service error", "error", err, "budget_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
