package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/budget"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

// TrendWindowDays is the fixed look-back of the trend, counted back from the reference day.
const TrendWindowDays = 180

// CategoryTotal is one row of the month breakdown, keyed by category name. CategoryID and Name
// are nil for expenses without a category; CategoryID is also nil when several categories share
// the name.
type CategoryTotal struct {
	CategoryID *int64
	Name       *string
	Total      decimal.Decimal
}

// DatedAmount is a single expense amount on its date.
type DatedAmount struct {
	Date   time.Time
	Amount decimal.Decimal
}

type MonthTotal struct {
	Month calendar.Month
	Total decimal.Decimal
}

type Summary struct {
	ReferenceDate time.Time
	Month         calendar.Month
	MonthTotal    decimal.Decimal
	Breakdown     []CategoryTotal
	Recent        []*expense.Expense
	Trend         []MonthTotal
	Budgets       []*budget.Evaluation
}

// SortBreakdown orders by total desc, then name asc, with the uncategorised group last among equals.
func SortBreakdown(rows []CategoryTotal) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := a.Total.Cmp(b.Total); c != 0 {
			return c > 0
		}
		if (a.Name == nil) != (b.Name == nil) {
			return b.Name == nil
		}
		if a.Name != nil {
			if c := strings.Compare(*a.Name, *b.Name); c != 0 {
				return c < 0
			}
		}
		if a.CategoryID != nil && b.CategoryID != nil {
			return *a.CategoryID < *b.CategoryID
		}
		return false
	})
}

// TrendStart is the first day included in the trend for reference day ref.
func TrendStart(ref time.Time) time.Time {
	return calendar.TruncateDay(ref).AddDate(0, 0, -TrendWindowDays)
}

// BucketByMonth sums amounts per calendar month, oldest month first.
func BucketByMonth(amounts []DatedAmount) []MonthTotal {
	totals := make(map[calendar.Month]decimal.Decimal)
	for _, a := range amounts {
		m := calendar.MonthOf(a.Date)
		if t, ok := totals[m]; ok {
			totals[m] = t.Add(a.Amount)
		} else {
			totals[m] = money.Zero.Add(a.Amount)
		}
	}

	result := make([]MonthTotal, 0, len(totals))
	for m, t := range totals {
		result = append(result, MonthTotal{Month: m, Total: t})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month.Before(result[j].Month)
	})
	return result
}
