package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in the record file.
const DateLayout = "2006-01-02"

// Amounts outside these bounds are rejected; formatting a decimal expands its
// exponent into a big integer.
const (
	maxAmountExponent = 20
	maxAmountDigits   = 30
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrFieldCount    = errors.New("wrong number of fields")
	ErrMissingAmount = errors.New("amount not set")
)

// Expense is a single recorded expense. It is immutable once built; use
// NewExpense to construct one.
type Expense struct {
	date        string
	amount      decimal.Decimal
	category    string
	description string
}

func (e *Expense) Date() string {
	return e.date
}

func (e *Expense) Amount() decimal.Decimal {
	return e.amount
}

func (e *Expense) Category() string {
	return e.category
}

func (e *Expense) Description() string {
	return e.description
}

// Equal reports whether both expenses carry the same four fields. Amounts are
// compared numerically, so 12.5 and 12.50 are equal.
func (e *Expense) Equal(other *Expense) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.date == other.date &&
		e.amount.Equal(other.amount) &&
		e.category == other.category &&
		e.description == other.description
}

func (e *Expense) String() string {
	return fmt.Sprintf("%s %s %s %q", e.date, e.amount.StringFixed(2), e.category, e.description)
}

// ParseAmount parses a user or file supplied decimal amount. Surrounding
// whitespace is ignored; anything else that is not a number is rejected with
// ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	}
	if d.NumDigits() > maxAmountDigits {
		return decimal.Zero, fmt.Errorf("%w: %q has too many digits", ErrInvalidAmount, s)
	}
	return d, nil
}
