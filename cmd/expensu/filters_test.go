package main

import (
	"testing"

	"github.com/yurifrl/expensu/pkg/models"
)

func TestFilters(t *testing.T) {
	build := func(date, amount, category string) *models.Expense {
		e, err := models.NewExpense().SetDate(date).SetAmountFromString(amount).SetCategory(category).Build()
		if err != nil {
			t.Fatalf("failed to build expense: %v", err)
		}
		return e
	}
	expenses := []*models.Expense{
		build("2024-01-01", "10", "Food"),
		build("2024-01-15", "50", "Transport"),
		build("2024-02-01", "5", "Fast food"),
		build("not-a-date", "1", "Food"),
	}

	cases := []struct {
		name    string
		filters filters
		expect  int
	}{
		{"start", filters{startDate: "2024-01-10"}, 2},
		{"end", filters{endDate: "2024-01-15"}, 2},
		{"range", filters{startDate: "2024-01-02", endDate: "2024-01-31"}, 1},
		{"min", filters{minAmount: "10"}, 2},
		{"max", filters{maxAmount: "9.99"}, 2},
		{"category", filters{category: "FOOD"}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fn, err := tc.filters.toFilterFunc()
			if err != nil {
				t.Fatalf("toFilterFunc failed: %v", err)
			}
			got := 0
			for _, e := range expenses {
				if fn(e) {
					got++
				}
			}
			if got != tc.expect {
				t.Errorf("expected %d matches, got %d", tc.expect, got)
			}
		})
	}
}

func TestFiltersEmptyAndInvalid(t *testing.T) {
	fn, err := (&filters{}).toFilterFunc()
	if err != nil || fn != nil {
		t.Errorf("expected nil filter without error, got %v", err)
	}

	for _, f := range []filters{{startDate: "01/02/2024"}, {endDate: "x"}, {minAmount: "ten"}, {maxAmount: "?"}} {
		if _, err := f.toFilterFunc(); err == nil {
			t.Errorf("expected error for %+v", f)
		}
	}
}
