package expense

import "time"

type Expense struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null;index:idx_expenses_user_date,priority:1"`
	CategoryID    *int64    `gorm:"column:category_id;index"`
	AmountCents   int64     `gorm:"column:amount_cents;not null"`
	Description   string    `gorm:"column:description;size:255;not null"`
	Notes         string    `gorm:"column:notes"`
	ExpenseDate   time.Time `gorm:"column:expense_date;type:date;not null;index:idx_expenses_user_date,priority:2"`
	PaymentMethod string    `gorm:"column:payment_method;size:20;not null;default:cash"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}
