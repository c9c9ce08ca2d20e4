package dashboard

import (
	"github.com/frahmantamala/finance-tracker/internal/budget"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/expense"
)

type CategoryTotalResponse struct {
	CategoryID *int64  `json:"category_id"`
	Category   *string `json:"category"`
	Total      string  `json:"total"`
}

type MonthTotalResponse struct {
	Month calendar.Month `json:"month"`
	Total string         `json:"total"`
}

type SummaryResponse struct {
	Date              string                    `json:"date"`
	Month             calendar.Month            `json:"month"`
	MonthTotal        string                    `json:"month_total"`
	CategoryBreakdown []CategoryTotalResponse   `json:"category_breakdown"`
	RecentExpenses    []expense.ExpenseResponse `json:"recent_expenses"`
	MonthlyTrend      []MonthTotalResponse      `json:"monthly_trend"`
	Budgets           []budget.BudgetResponse   `json:"budgets"`
}

func (s *Summary) ToResponse() SummaryResponse {
	breakdown := make([]CategoryTotalResponse, len(s.Breakdown))
	for i, row := range s.Breakdown {
		breakdown[i] = CategoryTotalResponse{
			CategoryID: row.CategoryID,
			Category:   row.Name,
			Total:      money.Format(row.Total),
		}
	}

	trend := make([]MonthTotalResponse, len(s.Trend))
	for i, row := range s.Trend {
		trend[i] = MonthTotalResponse{Month: row.Month, Total: money.Format(row.Total)}
	}

	return SummaryResponse{
		Date:              calendar.FormatDate(s.ReferenceDate),
		Month:             s.Month,
		MonthTotal:        money.Format(s.MonthTotal),
		CategoryBreakdown: breakdown,
		RecentExpenses:    expense.ToResponseSlice(s.Recent),
		MonthlyTrend:      trend,
		Budgets:           budget.ToResponseSlice(s.Budgets),
	}
}
