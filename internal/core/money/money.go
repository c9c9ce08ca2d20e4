// Package money holds the fixed-point amount rules shared by expenses and budgets.
//
// Amounts are decimals with at most two fractional digits and at most ten digits in total.
// They travel through the domain as shopspring decimals and are persisted as integer cents,
// which keeps SQL sums exact on every storage engine.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MaxDigits     = 10
	DecimalPlaces = 2
)

var (
	ErrInvalidAmount        = errors.New("enter a number")
	ErrTooManyDigits        = fmt.Errorf("ensure that there are no more than %d digits in total", MaxDigits)
	ErrTooManyDecimalPlaces = fmt.Errorf("ensure that there are no more than %d decimal places", DecimalPlaces)
	ErrTooManyWholeDigits   = fmt.Errorf("ensure that there are no more than %d digits before the decimal point", MaxDigits-DecimalPlaces)
)

// Zero is the canonical empty sum, already scaled to two decimal places.
var Zero = decimal.New(0, -DecimalPlaces)

// Parse reads a decimal literal and applies Validate. Trailing zeros count as decimal places,
// so "1.500" is rejected the same way "1.501" is.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if err := Validate(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// coefficientBitLimit bounds the unscaled value; anything wider has more than MaxDigits digits.
const coefficientBitLimit = 34

// Validate enforces the storage precision: at most 2 decimal places and 10 digits overall.
// Digits are counted from the coefficient and exponent, so a literal like "1e3000000" is
// rejected without being expanded.
func Validate(d decimal.Decimal) error {
	exp := int64(d.Exponent())
	coef := d.Coefficient()
	coef.Abs(coef)

	if exp > MaxDigits || exp < -MaxDigits || coef.BitLen() > coefficientBitLimit {
		return ErrTooManyDigits
	}

	var decimals, wholeDigits int64
	if exp < 0 {
		decimals = -exp
	}
	if coef.Sign() != 0 {
		coefDigits := int64(len(coef.String()))
		wholeDigits = coefDigits + exp
		if wholeDigits < 0 {
			wholeDigits = 0
		}
	}

	switch {
	case wholeDigits+decimals > MaxDigits:
		return ErrTooManyDigits
	case decimals > DecimalPlaces:
		return ErrTooManyDecimalPlaces
	case wholeDigits > MaxDigits-DecimalPlaces:
		return ErrTooManyWholeDigits
	}
	return nil
}

// ToCents converts a validated amount into its persisted integer form.
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(DecimalPlaces).Round(0).IntPart()
}

func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -DecimalPlaces)
}

// Format renders an amount with exactly two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(DecimalPlaces)
}

// Sum adds amounts; an empty input sums to Zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
