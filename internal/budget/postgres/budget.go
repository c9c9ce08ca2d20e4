package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/finance-tracker/internal/budget"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	budgetDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/budget"
	"gorm.io/gorm"
)

const defaultOrder = "CASE WHEN month IS NULL THEN 1 ELSE 0 END, month DESC, id DESC"

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

var _ budget.Repository = (*BudgetRepository)(nil)

// Create relies on gorm's TranslateError to surface unique violations as gorm.ErrDuplicatedKey.
func (r *BudgetRepository) Create(ctx context.Context, b *budgetDatamodel.Budget) error {
	err := r.db.WithContext(ctx).Create(b).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return budget.ErrDuplicate
	}
	return err
}

func (r *BudgetRepository) GetByID(ctx context.Context, userID, id int64) (*budgetDatamodel.Budget, error) {
	var b budgetDatamodel.Budget
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) List(ctx context.Context, userID int64) ([]*budgetDatamodel.Budget, error) {
	var budgets []*budgetDatamodel.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(defaultOrder).
		Find(&budgets).Error
	return budgets, err
}

func (r *BudgetRepository) ListForMonth(ctx context.Context, userID int64, month calendar.Month) ([]*budgetDatamodel.Budget, error) {
	var budgets []*budgetDatamodel.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, calendar.NewNullMonth(month)).
		Order(defaultOrder).
		Find(&budgets).Error
	return budgets, err
}

func (r *BudgetRepository) Exists(ctx context.Context, userID, categoryID int64, month calendar.NullMonth) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&budgetDatamodel.Budget{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID)
	if month.Valid {
		q = q.Where("month = ?", month)
	} else {
		q = q.Where("month IS NULL")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&budgetDatamodel.Budget{})
	return res.RowsAffected > 0, res.Error
}
