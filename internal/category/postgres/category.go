package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/finance-tracker/internal/category"
	budgetDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/budget"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID int64) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Order("id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(ctx context.Context, userID, id int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *CategoryRepository) Update(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).
		Model(&categoryDatamodel.Category{}).
		Where("id = ? AND user_id = ?", cat.ID, cat.UserID).
		Updates(map[string]interface{}{
			"name":        cat.Name,
			"description": cat.Description,
		}).Error
}

// Delete runs detach, cascade and delete in one transaction so the outcome does not depend
// on whether the engine enforces foreign keys.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&expenseDatamodel.Expense{}).
			Where("category_id = ? AND user_id = ?", id, userID).
			Update("category_id", nil)
		if res.Error != nil {
			return res.Error
		}

		res = tx.Where("category_id = ? AND user_id = ?", id, userID).Delete(&budgetDatamodel.Budget{})
		if res.Error != nil {
			return res.Error
		}

		res = tx.Where("id = ? AND user_id = ?", id, userID).Delete(&categoryDatamodel.Category{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
