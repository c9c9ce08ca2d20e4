package category

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error)
	List(ctx context.Context, userID int64) ([]*Category, error)
	Get(ctx context.Context, userID, id int64) (*Category, error)
	Update(ctx context.Context, userID, id int64, dto UpdateCategoryDTO) (*Category, error)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}

	categories, err := h.Service.List(r.Context(), userID)
	if err != nil {
		h.Logger.Error("GetCategories: failed to get categories", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: ToResponseSlice(categories),
	})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}

	var dto CreateCategoryDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	cat, err := h.Service.Create(r.Context(), userID, dto)
	if err != nil {
		h.Logger.Error("CreateCategory: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, cat.ToResponse())
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	cat, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cat.ToResponse())
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	var dto UpdateCategoryDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	cat, err := h.Service.Update(r.Context(), userID, id, dto)
	if err != nil {
		h.Logger.Error("UpdateCategory: service error", "error", err, "category_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cat.ToResponse())
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.RequireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.PathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		h.Logger.Error("DeleteCategory: service error", "error", err, "category_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
