package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const (
	totalBetweenQuery = `
		SELECT CAST(COALESCE(SUM(amount_cents), 0) AS BIGINT)
		FROM expenses
		WHERE user_id = ? AND expense_date >= ? AND expense_date < ?`

	categoryTotalsQuery = `
		SELECT CASE WHEN COUNT(DISTINCT e.category_id) = 1 THEN MIN(e.category_id) END AS category_id,
		       c.name AS name,
		       CAST(COALESCE(SUM(e.amount_cents), 0) AS BIGINT) AS total_cents
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = ? AND e.expense_date >= ? AND e.expense_date < ?
		GROUP BY c.name
		ORDER BY total_cents DESC`

	amountsSinceQuery = `
		SELECT expense_date, amount_cents
		FROM expenses
		WHERE user_id = ? AND expense_date >= ?`
)

type categoryTotalRow struct {
	CategoryID sql.NullInt64  `db:"category_id"`
	Name       sql.NullString `db:"name"`
	TotalCents int64          `db:"total_cents"`
}

type datedAmountRow struct {
	ExpenseDate time.Time `db:"expense_date"`
	AmountCents int64     `db:"amount_cents"`
}

// DashboardRepository is the sqlx read model behind the dashboard. Queries are written with
// '?' placeholders and rebound for the connected driver.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

var _ dashboard.Reader = (*DashboardRepository)(nil)

func (r *DashboardRepository) TotalBetween(ctx context.Context, userID int64, from, to time.Time) (decimal.Decimal, error) {
	var cents int64
	if err := r.db.GetContext(ctx, &cents, r.db.Rebind(totalBetweenQuery), userID, from, to); err != nil {
		return decimal.Decimal{}, err
	}
	return money.FromCents(cents), nil
}

// CategoryTotalsBetween sums spend per category name; same-named categories share one row, which
// carries a category id only when a single category contributed to it.
func (r *DashboardRepository) CategoryTotalsBetween(ctx context.Context, userID int64, from, to time.Time) ([]dashboard.CategoryTotal, error) {
	var rows []categoryTotalRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(categoryTotalsQuery), userID, from, to); err != nil {
		return nil, err
	}

	result := make([]dashboard.CategoryTotal, len(rows))
	for i, row := range rows {
		total := dashboard.CategoryTotal{Total: money.FromCents(row.TotalCents)}
		if row.CategoryID.Valid {
			id := row.CategoryID.Int64
			total.CategoryID = &id
		}
		if row.Name.Valid {
			name := row.Name.String
			total.Name = &name
		}
		result[i] = total
	}
	return result, nil
}

func (r *DashboardRepository) AmountsSince(ctx context.Context, userID int64, since time.Time) ([]dashboard.DatedAmount, error) {
	var rows []datedAmountRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(amountsSinceQuery), userID, since); err != nil {
		return nil, err
	}

	result := make([]dashboard.DatedAmount, len(rows))
	for i, row := range rows {
		result[i] = dashboard.DatedAmount{Date: row.ExpenseDate, Amount: money.FromCents(row.AmountCents)}
	}
	return result, nil
}
