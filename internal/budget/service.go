package budget

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	budgetDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/budget"
)

// Repository is owner scoped; lookups return nil, nil for missing or foreign rows.
// Lists order by month desc with month-less budgets last, then id desc.
type Repository interface {
	Create(ctx context.Context, budget *budgetDatamodel.Budget) error
	GetByID(ctx context.Context, userID, id int64) (*budgetDatamodel.Budget, error)
	List(ctx context.Context, userID int64) ([]*budgetDatamodel.Budget, error)
	ListForMonth(ctx context.Context, userID int64, month calendar.Month) ([]*budgetDatamodel.Budget, error)
	// Exists matches month exactly, so two month-less budgets for a category collide.
	Exists(ctx context.Context, userID, categoryID int64, month calendar.NullMonth) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type CategoryChecker interface {
	EnsureOwned(ctx context.Context, userID, id int64, field string) error
}

var ErrDuplicateBudget = internal.NewValidationError(
	"Budget with this owner, category and month already exists",
	internal.ErrCodeDuplicateBudget,
)

type Service struct {
	repo       Repository
	categories CategoryChecker
	evaluator  *Evaluator
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryChecker, evaluator *Evaluator, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		evaluator:  evaluator,
		logger:     logger,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, dto CreateBudgetDTO) (*Evaluation, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.categories.EnsureOwned(ctx, userID, *dto.CategoryID, "category_id"); err != nil {
		return nil, err
	}

	month := dto.ParsedMonth()
	exists, err := s.repo.Exists(ctx, userID, *dto.CategoryID, month)
	if err != nil {
		s.logger.Error("failed to check budget uniqueness", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create budget", err)
	}
	if exists {
		return nil, ErrDuplicateBudget
	}

	b := NewBudget(userID, *dto.CategoryID, *dto.Amount, month)
	data := ToDataModel(b)
	if err := s.repo.Create(ctx, data); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrDuplicateBudget
		}
		s.logger.Error("failed to create budget", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create budget", err)
	}

	s.logger.Info("budget created",
		"budget_id", data.ID,
		"user_id", userID,
		"category_id", data.CategoryID,
		"month", month.String())

	return s.evaluate(ctx, FromDataModel(data))
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Evaluation, error) {
	data, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("failed to get budget", "error", err, "budget_id", id)
		return nil, internal.NewInternalError("failed to get budget", err)
	}
	if data == nil {
		return nil, internal.ErrBudgetNotFound
	}
	return s.evaluate(ctx, FromDataModel(data))
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Evaluation, error) {
	data, err := s.repo.List(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list budgets", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list budgets", err)
	}
	return s.evaluateAll(ctx, FromDataModelSlice(data))
}

// ListForMonth returns the budgets whose month is exactly month. Month-less budgets never match.
func (s *Service) ListForMonth(ctx context.Context, userID int64, month calendar.Month) ([]*Evaluation, error) {
	data, err := s.repo.ListForMonth(ctx, userID, month)
	if err != nil {
		s.logger.Error("failed to list budgets for month", "error", err, "user_id", userID, "month", month.String())
		return nil, internal.NewInternalError("failed to list budgets", err)
	}
	return s.evaluateAll(ctx, FromDataModelSlice(data))
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		s.logger.Error("failed to delete budget", "error", err, "budget_id", id)
		return internal.NewInternalError("failed to delete budget", err)
	}
	if !deleted {
		return internal.ErrBudgetNotFound
	}

	s.logger.Info("budget deleted", "budget_id", id, "user_id", userID)
	return nil
}

func (s *Service) evaluate(ctx context.Context, b *Budget) (*Evaluation, error) {
	ev, err := s.evaluator.Evaluate(ctx, b)
	if err != nil {
		return nil, wrapEvaluation(err)
	}
	return ev, nil
}

func (s *Service) evaluateAll(ctx context.Context, budgets []*Budget) ([]*Evaluation, error) {
	evs, err := s.evaluator.EvaluateAll(ctx, budgets)
	if err != nil {
		return nil, wrapEvaluation(err)
	}
	return evs, nil
}

func wrapEvaluation(err error) error {
	if _, ok := internal.IsAppError(err); ok {
		return err
	}
	return internal.NewInternalError("failed to evaluate budget", err)
}
