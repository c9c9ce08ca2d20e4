package budget

import (
	"context"

	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/shopspring/decimal"
)

// SpendingReader sums an owner's expenses for one category within a calendar month.
type SpendingReader interface {
	SpentInMonth(ctx context.Context, userID, categoryID int64, month calendar.Month) (decimal.Decimal, error)
}

// Evaluator derives spent and remaining for budgets. Nothing is cached or stored.
type Evaluator struct {
	spending SpendingReader
}

func NewEvaluator(spending SpendingReader) *Evaluator {
	return &Evaluator{spending: spending}
}

// Evaluate computes spent (zero for a budget without a month) and remaining = amount - spent.
// Remaining goes negative when the budget is overspent.
func (e *Evaluator) Evaluate(ctx context.Context, b *Budget) (*Evaluation, error) {
	spent := money.Zero
	if b.Month.Valid {
		var err error
		spent, err = e.spending.SpentInMonth(ctx, b.UserID, b.CategoryID, b.Month.Month)
		if err != nil {
			return nil, err
		}
	}

	return &Evaluation{
		Budget:    b,
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
	}, nil
}

func (e *Evaluator) EvaluateAll(ctx context.Context, budgets []*Budget) ([]*Evaluation, error) {
	result := make([]*Evaluation, 0, len(budgets))
	for _, b := range budgets {
		ev, err := e.Evaluate(ctx, b)
		if err != nil {
			return nil, err
		}
		result = append(result, ev)
	}
	return result, nil
}
