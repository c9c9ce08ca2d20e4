package budget

import (
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
)

// Budget.Month is NULL for a budget without a month. The unique index treats NULLs as distinct,
// so the month-less case is guarded by the budget service.
type Budget struct {
	ID          int64              `gorm:"primaryKey"`
	UserID      int64              `gorm:"column:user_id;not null;uniqueIndex:idx_budgets_user_category_month,priority:1"`
	CategoryID  int64              `gorm:"column:category_id;not null;uniqueIndex:idx_budgets_user_category_month,priority:2"`
	AmountCents int64              `gorm:"column:amount_cents;not null"`
	Month       calendar.NullMonth `gorm:"column:month;type:date;uniqueIndex:idx_budgets_user_category_month,priority:3"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (Budget) TableName() string {
	return "budgets"
}
