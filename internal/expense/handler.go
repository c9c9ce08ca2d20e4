package expense

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error)
	Get(ctx context.Context, userID, id int64) (*Expense, error)
	List(ctx context.Context, userID int64, query ListExpensesQuery) (*ListResult, error)
	Update(ctx context.Context, userID, id int64, dto UpdateExpenseDTO) (*Expense, error)
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

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}

	var dto CreateExpenseDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	exp, err := h.Service.Create(r.Context(), userID, dto)
	if err != nil {
		h.Logger.Error("CreateExpense: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp.ToResponse())
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	exp, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp.ToResponse())
}

// ListExpenses accepts the category, start_date and end_date query filters.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := ListExpensesQuery{
		CategoryID: q.Get("category"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
	}

	result, err := h.Service.List(r.Context(), userID, query)
	if err != nil {
		h.Logger.Error("ListExpenses: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ExpenseListResponse{
		Expenses: ToResponseSlice(result.Expenses),
		Total:    money.Format(result.Total),
		Count:    len(result.Expenses),
	})
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	var dto UpdateExpenseDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	exp, err := h.Service.Update(r.Context(), userID, id, dto)
	if err != nil {
		h.Logger.Error("UpdateExpense: service error", "error", err, "expense_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp.ToResponse())
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		h.Logger.Error("DeleteExpense: service error", "error", err, "expense_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
