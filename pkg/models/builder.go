package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseBuilder accumulates fields and the first error seen while setting
// them. Build returns that error, so callers can chain setters freely.
type ExpenseBuilder struct {
	expense   Expense
	amountSet bool
	err       error
}

func NewExpense() *ExpenseBuilder {
	return &ExpenseBuilder{}
}

func (b *ExpenseBuilder) SetDate(date string) *ExpenseBuilder {
	b.expense.date = date
	return b
}

// SetDateFromTime stamps the expense with the local calendar date of t.
func (b *ExpenseBuilder) SetDateFromTime(t time.Time) *ExpenseBuilder {
	b.expense.date = t.Format(DateLayout)
	return b
}

func (b *ExpenseBuilder) SetAmount(amount decimal.Decimal) *ExpenseBuilder {
	b.expense.amount = amount
	b.amountSet = true
	return b
}

func (b *ExpenseBuilder) SetAmountFromString(s string) *ExpenseBuilder {
	amount, err := ParseAmount(s)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	return b.SetAmount(amount)
}

func (b *ExpenseBuilder) SetCategory(category string) *ExpenseBuilder {
	b.expense.category = category
	return b
}

func (b *ExpenseBuilder) SetDescription(description string) *ExpenseBuilder {
	b.expense.description = description
	return b
}

func (b *ExpenseBuilder) Build() (*Expense, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.amountSet {
		return nil, ErrMissingAmount
	}
	e := b.expense
	return &e, nil
}
