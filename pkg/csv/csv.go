package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/expensu/pkg/models"
)

// Header is the first line of every record file.
var Header = []string{"Date", "Amount", "Category", "Description"}

type Record interface {
	Date() string
	Amount() decimal.Decimal
	Category() string
	Description() string
}

type FilterFunc[T Record] func(T) bool

// RowError describes a data row that could not be turned into an expense.
type RowError struct {
	Line int
	Raw  []string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Row returns the CSV fields of a record in header order.
func Row[T Record](r T) []string {
	return []string{r.Date(), r.Amount().String(), r.Category(), r.Description()}
}

// WriteHeader writes the header line to w.
func WriteHeader(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Write serializes records to w, one line each, without a header.
func Write[T Record](w io.Writer, records ...T) error {
	cw := csv.NewWriter(w)
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("error writing expense: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Create renders the header plus every record accepted by filter. A nil
// filter accepts everything.
func Create[T Record](records []T, filter FilterFunc[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf); err != nil {
		return nil, err
	}
	selected := make([]T, 0, len(records))
	for _, r := range records {
		if filter == nil || filter(r) {
			selected = append(selected, r)
		}
	}
	if err := Write(&buf, selected...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseRow converts the four fields of a data row into an expense.
func ParseRow(rec []string) (*models.Expense, error) {
	if len(rec) != len(Header) {
		return nil, fmt.Errorf("%w: expected %d, got %d", models.ErrFieldCount, len(Header), len(rec))
	}
	return models.NewExpense().
		SetDate(rec[0]).
		SetAmountFromString(rec[1]).
		SetCategory(rec[2]).
		SetDescription(rec[3]).
		Build()
}

// Decode reads a whole record file. The first row is the header and is
// discarded. Rows that fail ParseRow are returned in skipped instead of
// aborting the read; only CSV syntax errors are returned as err.
func Decode(r io.Reader) (expenses []*models.Expense, skipped []*RowError, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // field count is validated per row
	reader.LazyQuotes = true

	first := true
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV record: %w", err)
		}
		if first {
			first = false
			continue
		}

		line, _ := reader.FieldPos(0)
		expense, err := ParseRow(rec)
		if err != nil {
			skipped = append(skipped, &RowError{Line: line, Raw: rec, Err: err})
			continue
		}
		expenses = append(expenses, expense)
	}

	return expenses, skipped, nil
}
