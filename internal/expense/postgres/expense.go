package postgres

import (
	"context"
	"errors"
	"time"

	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

var _ expense.Repository = (*ExpenseRepository)(nil)

// Create saves a new expense to the database
func (r *ExpenseRepository) Create(ctx context.Context, exp *expenseDatamodel.Expense) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

// GetByID retrieves one of the owner's expenses
func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id int64) (*expenseDatamodel.Expense, error) {
	var exp expenseDatamodel.Expense
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exp, nil
}

// List retrieves the owner's expenses in default order
func (r *ExpenseRepository) List(ctx context.Context, userID int64, filter expense.Filter) ([]*expenseDatamodel.Expense, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.From != nil {
		q = q.Where("expense_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("expense_date <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var expenses []*expenseDatamodel.Expense
	err := q.Order("expense_date DESC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&expenses).Error
	return expenses, err
}

// Update replaces the editable fields of an expense
func (r *ExpenseRepository) Update(ctx context.Context, exp *expenseDatamodel.Expense) error {
	exp.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ? AND user_id = ?", exp.ID, exp.UserID).
		Updates(map[string]interface{}{
			"category_id":    exp.CategoryID,
			"amount_cents":   exp.AmountCents,
			"description":    exp.Description,
			"notes":          exp.Notes,
			"expense_date":   exp.ExpenseDate,
			"payment_method": exp.PaymentMethod,
			"updated_at":     exp.UpdatedAt,
		}).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&expenseDatamodel.Expense{})
	return res.RowsAffected > 0, res.Error
}

// SumBetween totals the owner's amounts for a category with dates in [from, to)
func (r *ExpenseRepository) SumBetween(ctx context.Context, userID, categoryID int64, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Select("CAST(COALESCE(SUM(amount_cents), 0) AS BIGINT)").
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Scan(&total).Error
	return total, err
}
