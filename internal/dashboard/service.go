package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/budget"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

// Reader is the aggregate read model over the owner's expenses. Ranges are [from, to).
type Reader interface {
	TotalBetween(ctx context.Context, userID int64, from, to time.Time) (decimal.Decimal, error)
	CategoryTotalsBetween(ctx context.Context, userID int64, from, to time.Time) ([]CategoryTotal, error)
	AmountsSince(ctx context.Context, userID int64, since time.Time) ([]DatedAmount, error)
}

type RecentExpenses interface {
	Recent(ctx context.Context, userID int64, limit int) ([]*expense.Expense, error)
}

type MonthBudgets interface {
	ListForMonth(ctx context.Context, userID int64, month calendar.Month) ([]*budget.Evaluation, error)
}

type Service struct {
	reader   Reader
	expenses RecentExpenses
	budgets  MonthBudgets
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(reader Reader, expenses RecentExpenses, budgets MonthBudgets, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		reader:   reader,
		expenses: expenses,
		budgets:  budgets,
		location: loc,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today is the default reference date.
func (s *Service) Today() time.Time {
	return calendar.Today(s.now(), s.location)
}

// Summary builds the dashboard for the month containing referenceDate.
func (s *Service) Summary(ctx context.Context, userID int64, referenceDate time.Time) (*Summary, error) {
	ref := calendar.TruncateDay(referenceDate)
	month := calendar.MonthOf(ref)
	from, to := month.Range()

	total, err := s.reader.TotalBetween(ctx, userID, from, to)
	if err != nil {
		return nil, s.fail("month total", userID, err)
	}

	breakdown, err := s.reader.CategoryTotalsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, s.fail("category breakdown", userID, err)
	}
	SortBreakdown(breakdown)

	recent, err := s.expenses.Recent(ctx, userID, expense.RecentLimit)
	if err != nil {
		return nil, err
	}

	amounts, err := s.reader.AmountsSince(ctx, userID, TrendStart(ref))
	if err != nil {
		return nil, s.fail("trend", userID, err)
	}

	budgets, err := s.budgets.ListForMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	return &Summary{
		ReferenceDate: ref,
		Month:         month,
		MonthTotal:    total,
		Breakdown:     breakdown,
		Recent:        recent,
		Trend:         BucketByMonth(amounts),
		Budgets:       budgets,
	}, nil
}

func (s *Service) fail(part string, userID int64, err error) error {
	s.logger.Error("failed to build dashboard", "part", part, "error", err, "user_id", userID)
	return internal.NewInternalError("failed to build dashboard", err)
}
