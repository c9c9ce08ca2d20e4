package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/shopspring/decimal"
)

// Repository is owner scoped; lookups return nil, nil for missing or foreign rows.
// List orders by date desc, then created_at desc, then id desc.
type Repository interface {
	Create(ctx context.Context, expense *expenseDatamodel.Expense) error
	GetByID(ctx context.Context, userID, id int64) (*expenseDatamodel.Expense, error)
	List(ctx context.Context, userID int64, filter Filter) ([]*expenseDatamodel.Expense, error)
	Update(ctx context.Context, expense *expenseDatamodel.Expense) error
	Delete(ctx context.Context, userID, id int64) (bool, error)
	// SumBetween totals amount_cents for one category and dates in [from, to).
	SumBetween(ctx context.Context, userID, categoryID int64, from, to time.Time) (int64, error)
}

// CategoryChecker confirms that a referenced category belongs to the owner.
type CategoryChecker interface {
	EnsureOwned(ctx context.Context, userID, id int64, field string) error
}

type Service struct {
	repo       Repository
	categories CategoryChecker
	location   *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

// NewService creates the expense service. loc decides which calendar day "today" is.
func NewService(repo Repository, categories CategoryChecker, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:       repo,
		categories: categories,
		location:   loc,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock replaces the clock used for the default expense date.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Today() time.Time {
	return calendar.Today(s.now(), s.location)
}

func (s *Service) Create(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		s.logger.Debug("expense validation failed", "error", err, "user_id", userID)
		return nil, err
	}
	if dto.CategoryID != nil {
		if err := s.categories.EnsureOwned(ctx, userID, *dto.CategoryID, "category_id"); err != nil {
			return nil, err
		}
	}

	exp := NewExpense(userID, dto, s.Today())
	data := ToDataModel(exp)
	if err := s.repo.Create(ctx, data); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense created successfully",
		"expense_id", data.ID,
		"user_id", userID,
		"amount", money.Format(exp.Amount))

	return FromDataModel(data), nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Expense, error) {
	data, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to get expense", err)
	}
	if data == nil {
		return nil, internal.ErrExpenseNotFound
	}
	return FromDataModel(data), nil
}

// List returns the owner's expenses matching the query and the sum of their amounts.
func (s *Service) List(ctx context.Context, userID int64, query ListExpensesQuery) (*ListResult, error) {
	filter, appErr := query.Parse()
	if appErr != nil {
		return nil, appErr
	}
	if filter.Empty() {
		return &ListResult{Expenses: []*Expense{}, Total: money.Zero}, nil
	}

	dataExpenses, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list expenses", err)
	}

	expenses := FromDataModelSlice(dataExpenses)
	return &ListResult{Expenses: expenses, Total: Total(expenses)}, nil
}

// Recent returns the owner's latest expenses in default order.
func (s *Service) Recent(ctx context.Context, userID int64, limit int) ([]*Expense, error) {
	if limit <= 0 {
		limit = RecentLimit
	}
	dataExpenses, err := s.repo.List(ctx, userID, Filter{Limit: limit})
	if err != nil {
		s.logger.Error("failed to get recent expenses", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get recent expenses", err)
	}
	return FromDataModelSlice(dataExpenses), nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, dto UpdateExpenseDTO) (*Expense, error) {
	exp, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.CategoryID != nil {
		if err := s.categories.EnsureOwned(ctx, userID, *dto.CategoryID, "category_id"); err != nil {
			return nil, err
		}
	}

	exp.Apply(dto)
	data := ToDataModel(exp)
	if err := s.repo.Update(ctx, data); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to update expense", err)
	}

	s.logger.Info("expense updated", "expense_id", id, "user_id", userID)
	return FromDataModel(data), nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return internal.NewInternalError("failed to delete expense", err)
	}
	if !deleted {
		return internal.ErrExpenseNotFound
	}

	s.logger.Info("expense deleted", "expense_id", id, "user_id", userID)
	return nil
}

// SpentInMonth sums the owner's expenses in one category dated within month.
func (s *Service) SpentInMonth(ctx context.Context, userID, categoryID int64, month calendar.Month) (decimal.Decimal, error) {
	from, to := month.Range()
	cents, err := s.repo.SumBetween(ctx, userID, categoryID, from, to)
	if err != nil {
		s.logger.Error("failed to sum expenses", "error", err, "user_id", userID, "category_id", categoryID)
		return decimal.Decimal{}, internal.NewInternalError("failed to sum expenses", err)
	}
	return money.FromCents(cents), nil
}
