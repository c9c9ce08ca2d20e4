package expense

import (
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash         = "cash"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodDebitCard    = "debit_card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodOther        = "other"

	DefaultPaymentMethod = PaymentMethodCash
	RecentLimit          = 10
	MaxDescriptionLength = 255
)

var PaymentMethods = []string{
	PaymentMethodCash,
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodBankTransfer,
	PaymentMethodOther,
}

type Expense struct {
	ID            int64
	UserID        int64
	CategoryID    *int64
	Amount        decimal.Decimal
	Description   string
	Notes         string
	Date          time.Time
	PaymentMethod string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewExpense builds an expense from a validated payload. today is used when no date was given.
func NewExpense(userID int64, dto CreateExpenseDTO, today time.Time) *Expense {
	now := time.Now()
	e := &Expense{
		UserID:        userID,
		CategoryID:    dto.CategoryID,
		Amount:        *dto.Amount,
		Description:   dto.Description,
		Notes:         dto.Notes,
		Date:          today,
		PaymentMethod: DefaultPaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if dto.Date != "" {
		e.Date, _ = calendar.ParseDate(dto.Date)
	}
	if dto.PaymentMethod != "" {
		e.PaymentMethod = dto.PaymentMethod
	}
	return e
}

// Apply replaces the expense's fields. A missing date or payment method keeps the current one.
func (e *Expense) Apply(dto UpdateExpenseDTO) {
	e.Amount = *dto.Amount
	e.Description = dto.Description
	e.CategoryID = dto.CategoryID
	e.Notes = dto.Notes
	if dto.Date != "" {
		e.Date, _ = calendar.ParseDate(dto.Date)
	}
	if dto.PaymentMethod != "" {
		e.PaymentMethod = dto.PaymentMethod
	}
	e.UpdatedAt = time.Now()
}

func (e *Expense) ToResponse() ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		CategoryID:    e.CategoryID,
		Amount:        money.Format(e.Amount),
		Description:   e.Description,
		Notes:         e.Notes,
		Date:          calendar.FormatDate(e.Date),
		PaymentMethod: e.PaymentMethod,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:            e.ID,
		UserID:        e.UserID,
		CategoryID:    e.CategoryID,
		AmountCents:   money.ToCents(e.Amount),
		Description:   e.Description,
		Notes:         e.Notes,
		ExpenseDate:   calendar.TruncateDay(e.Date),
		PaymentMethod: e.PaymentMethod,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:            e.ID,
		UserID:        e.UserID,
		CategoryID:    e.CategoryID,
		Amount:        money.FromCents(e.AmountCents),
		Description:   e.Description,
		Notes:         e.Notes,
		Date:          calendar.TruncateDay(e.ExpenseDate),
		PaymentMethod: e.PaymentMethod,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}

func ToResponseSlice(expenses []*Expense) []ExpenseResponse {
	result := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = e.ToResponse()
	}
	return result
}

// Total sums the amounts of expenses.
func Total(expenses []*Expense) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}
	return money.Sum(amounts...)
}
