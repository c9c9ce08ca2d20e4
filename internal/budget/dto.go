package budget

import (
	"strings"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// CreateBudgetDTO is the create payload. Month is "YYYY-MM" (a full date is accepted and its day
// ignored); empty or null means the budget has no month.
type CreateBudgetDTO struct {
	CategoryID *int64           `json:"category_id"`
	Amount     *decimal.Decimal `json:"amount"`
	Month      string           `json:"month"`
}

func (dto *CreateBudgetDTO) Normalize() {
	dto.Month = strings.TrimSpace(dto.Month)
}

func (dto CreateBudgetDTO) Validate() *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("category_id", dto.CategoryID).
		Required()
	validator.Field("amount", dto.Amount).
		Required().
		Amount()
	if dto.Month != "" {
		validator.Field("month", dto.Month).Custom(func(v interface{}) *internal.AppError {
			if _, err := calendar.ParseMonth(v.(string)); err != nil {
				return validation.FieldError("month", err, internal.ErrCodeInvalidMonth)
			}
			return nil
		})
	}
	return validator.Validate()
}

// ParsedMonth returns the optional month of a validated payload.
func (dto CreateBudgetDTO) ParsedMonth() calendar.NullMonth {
	if dto.Month == "" {
		return calendar.NullMonth{}
	}
	m, err := calendar.ParseMonth(dto.Month)
	if err != nil {
		return calendar.NullMonth{}
	}
	return calendar.NewNullMonth(m)
}

type BudgetResponse struct {
	ID         int64              `json:"id"`
	CategoryID int64              `json:"category_id"`
	Amount     string             `json:"amount"`
	Month      calendar.NullMonth `json:"month"`
	Spent      string             `json:"spent"`
	Remaining  string             `json:"remaining"`
	CreatedAt  time.Time          `json:"created_at"`
}

type BudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}
