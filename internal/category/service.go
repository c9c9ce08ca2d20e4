package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/finance-tracker/internal"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
)

// RepositoryAPI is owner scoped: every lookup takes the owner id and returns nil, nil
// for rows that are missing or belong to someone else.
type RepositoryAPI interface {
	ListByUser(ctx context.Context, userID int64) ([]*categoryDatamodel.Category, error)
	GetByID(ctx context.Context, userID, id int64) (*categoryDatamodel.Category, error)
	Create(ctx context.Context, category *categoryDatamodel.Category) error
	Update(ctx context.Context, category *categoryDatamodel.Category) error
	// Delete detaches the category's expenses, removes its budgets and then the category.
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cat := NewCategory(userID, dto)
	data := ToDataModel(cat)
	if err := s.repo.Create(ctx, data); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", data.ID, "user_id", userID)
	return FromDataModel(data), nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Category, error) {
	dataCategories, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list categories", err)
	}
	return FromDataModelSlice(dataCategories), nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Category, error) {
	data, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id)
		return nil, internal.NewInternalError("failed to get category", err)
	}
	if data == nil {
		return nil, internal.ErrCategoryNotFound
	}
	return FromDataModel(data), nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, dto UpdateCategoryDTO) (*Category, error) {
	cat, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cat.Apply(dto)
	if err := s.repo.Update(ctx, ToDataModel(cat)); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, internal.NewInternalError("failed to update category", err)
	}
	return cat, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return internal.NewInternalError("failed to delete category", err)
	}
	if !deleted {
		return internal.ErrCategoryNotFound
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}

// EnsureOwned validates that a category referenced from another record belongs to the owner.
// A foreign or missing category is reported as a field error on field.
func (s *Service) EnsureOwned(ctx context.Context, userID, id int64, field string) error {
	data, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return internal.NewInternalError("failed to check category", err)
	}
	if data == nil {
		return internal.NewValidationFieldError(field,
			fmt.Sprintf("select a valid choice; category %d is not one of the available choices", id),
			internal.ErrCodeInvalidCategory)
	}
	return nil
}
