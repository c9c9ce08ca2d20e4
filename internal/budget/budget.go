package budget

import (
	"errors"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	budgetDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/budget"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/shopspring/decimal"
)

// ErrDuplicate is returned by repositories when (owner, category, month) already exists.
var ErrDuplicate = errors.New("budget already exists for this category and month")

type Budget struct {
	ID         int64
	UserID     int64
	CategoryID int64
	Amount     decimal.Decimal
	Month      calendar.NullMonth
	CreatedAt  time.Time
}

// Evaluation is a budget with its spending derived at read time.
type Evaluation struct {
	*Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

func NewBudget(userID int64, categoryID int64, amount decimal.Decimal, month calendar.NullMonth) *Budget {
	return &Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Month:      month,
		CreatedAt:  time.Now(),
	}
}

func (e *Evaluation) ToResponse() BudgetResponse {
	return BudgetResponse{
		ID:         e.ID,
		CategoryID: e.CategoryID,
		Amount:     money.Format(e.Amount),
		Month:      e.Month,
		Spent:      money.Format(e.Spent),
		Remaining:  money.Format(e.Remaining),
		CreatedAt:  e.CreatedAt,
	}
}

func ToDataModel(b *Budget) *budgetDatamodel.Budget {
	return &budgetDatamodel.Budget{
		ID:          b.ID,
		UserID:      b.UserID,
		CategoryID:  b.CategoryID,
		AmountCents: money.ToCents(b.Amount),
		Month:       b.Month,
		CreatedAt:   b.CreatedAt,
	}
}

func FromDataModel(b *budgetDatamodel.Budget) *Budget {
	return &Budget{
		ID:         b.ID,
		UserID:     b.UserID,
		CategoryID: b.CategoryID,
		Amount:     money.FromCents(b.AmountCents),
		Month:      b.Month,
		CreatedAt:  b.CreatedAt,
	}
}

func FromDataModelSlice(budgets []*budgetDatamodel.Budget) []*Budget {
	result := make([]*Budget, len(budgets))
	for i, b := range budgets {
		result[i] = FromDataModel(b)
	}
	return result
}

func ToResponseSlice(evaluations []*Evaluation) []BudgetResponse {
	result := make([]BudgetResponse, len(evaluations))
	for i, e := range evaluations {
		result[i] = e.ToResponse()
	}
	return result
}
