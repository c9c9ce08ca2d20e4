package expense

import (
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// CreateExpenseDTO is the create payload. Date is YYYY-MM-DD and defaults to today;
// PaymentMethod defaults to cash.
type CreateExpenseDTO struct {
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description"`
	CategoryID    *int64           `json:"category_id"`
	Notes         string           `json:"notes"`
	Date          string           `json:"date"`
	PaymentMethod string           `json:"payment_method"`
}

func (dto *CreateExpenseDTO) Normalize() {
	dto.Description = strings.TrimSpace(dto.Description)
	dto.Notes = strings.TrimSpace(dto.Notes)
	dto.Date = strings.TrimSpace(dto.Date)
	dto.PaymentMethod = strings.TrimSpace(dto.PaymentMethod)
}

func (dto CreateExpenseDTO) Validate() *internal.AppError {
	return validateExpenseFields(dto.Amount, dto.Description, dto.Date, dto.PaymentMethod)
}

// UpdateExpenseDTO replaces an expense. Amount and description are required, a null category
// detaches the expense and an absent notes field clears it; an absent date or payment method
// keeps the stored value.
type UpdateExpenseDTO struct {
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description"`
	CategoryID    *int64           `json:"category_id"`
	Notes         string           `json:"notes"`
	Date          string           `json:"date"`
	PaymentMethod string           `json:"payment_method"`
}

func (dto *UpdateExpenseDTO) Normalize() {
	dto.Description = strings.TrimSpace(dto.Description)
	dto.Notes = strings.TrimSpace(dto.Notes)
	dto.Date = strings.TrimSpace(dto.Date)
	dto.PaymentMethod = strings.TrimSpace(dto.PaymentMethod)
}

func (dto UpdateExpenseDTO) Validate() *internal.AppError {
	return validateExpenseFields(dto.Amount, dto.Description, dto.Date, dto.PaymentMethod)
}

func validateExpenseFields(amount *decimal.Decimal, description, date, paymentMethod string) *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("amount", amount).
		Required().
		Amount()
	validator.Field("description", description).
		Required().
		MaxLength(MaxDescriptionLength, internal.ErrCodeInvalidDescription)
	if date != "" {
		validator.Field("date", date).Custom(func(v interface{}) *internal.AppError {
			if _, err := calendar.ParseDate(v.(string)); err != nil {
				return validation.FieldError("date", err, internal.ErrCodeInvalidDate)
			}
			return nil
		})
	}
	if paymentMethod != "" {
		validator.Field("payment_method", paymentMethod).
			OneOf(PaymentMethods, internal.ErrCodeInvalidPaymentMethod)
	}
	return validator.Validate()
}

// ListExpensesQuery carries the raw list filters. Empty strings mean no filter.
type ListExpensesQuery struct {
	CategoryID string
	StartDate  string
	EndDate    string
}

// Filter is the parsed form of ListExpensesQuery. Dates are inclusive.
type Filter struct {
	CategoryID *int64
	From       *time.Time
	To         *time.Time
	Limit      int
}

// Parse converts the query strings, reporting every malformed value as a field error.
func (q ListExpensesQuery) Parse() (Filter, *internal.AppError) {
	var (
		filter Filter
		errs   []internal.ValidationError
	)

	if raw := strings.TrimSpace(q.CategoryID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, internal.ValidationError{
				Field: "category", Message: "enter a whole number", Code: string(internal.ErrCodeInvalidCategory),
			})
		} else {
			filter.CategoryID = &id
		}
	}

	parseDate := func(field, raw string) *time.Time {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		d, err := calendar.ParseDate(raw)
		if err != nil {
			errs = append(errs, internal.ValidationError{
				Field: field, Message: err.Error(), Code: string(internal.ErrCodeInvalidDate),
			})
			return nil
		}
		return &d
	}
	filter.From = parseDate("start_date", q.StartDate)
	filter.To = parseDate("end_date", q.EndDate)

	if len(errs) > 0 {
		return Filter{}, internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: errs})
	}
	return filter, nil
}

// Empty reports whether the date bounds exclude every day.
func (f Filter) Empty() bool {
	return f.From != nil && f.To != nil && f.From.After(*f.To)
}

type ListResult struct {
	Expenses []*Expense
	Total    decimal.Decimal
}

type ExpenseResponse struct {
	ID            int64     `json:"id"`
	CategoryID    *int64    `json:"category_id"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description"`
	Notes         string    `json:"notes"`
	Date          string    `json:"date"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    string            `json:"total"`
	Count    int               `json:"count"`
}
