package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/expensu/pkg/csv"
	"github.com/yurifrl/expensu/pkg/models"
)

type filters struct {
	startDate string
	endDate   string
	minAmount string
	maxAmount string
	category  string
}

// toFilterFunc validates the flag values and returns the matching filter, or
// nil when no filter flag was given.
func (f *filters) toFilterFunc() (csv.FilterFunc[*models.Expense], error) {
	var (
		start, end time.Time
		lo, hi     decimal.Decimal
		err        error
	)
	if f.startDate != "" {
		if start, err = time.Parse(models.DateLayout, f.startDate); err != nil {
			return nil, fmt.Errorf("invalid --start %q: expected YYYY-MM-DD", f.startDate)
		}
	}
	if f.endDate != "" {
		if end, err = time.Parse(models.DateLayout, f.endDate); err != nil {
			return nil, fmt.Errorf("invalid --end %q: expected YYYY-MM-DD", f.endDate)
		}
	}
	if f.minAmount != "" {
		if lo, err = models.ParseAmount(f.minAmount); err != nil {
			return nil, fmt.Errorf("invalid --min: %w", err)
		}
	}
	if f.maxAmount != "" {
		if hi, err = models.ParseAmount(f.maxAmount); err != nil {
			return nil, fmt.Errorf("invalid --max: %w", err)
		}
	}
	if *f == (filters{}) {
		return nil, nil
	}

	category := strings.ToLower(f.category)
	return func(e *models.Expense) bool {
		if f.startDate != "" || f.endDate != "" {
			date, err := time.Parse(models.DateLayout, e.Date())
			if err != nil {
				return false
			}
			if f.startDate != "" && date.Before(start) {
				return false
			}
			if f.endDate != "" && date.After(end) {
				return false
			}
		}
		if f.minAmount != "" && e.Amount().LessThan(lo) {
			return false
		}
		if f.maxAmount != "" && e.Amount().GreaterThan(hi) {
			return false
		}
		if category != "" && !strings.Contains(strings.ToLower(e.Category()), category) {
			return false
		}
		return true
	}, nil
}
