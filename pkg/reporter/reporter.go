package reporter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/yurifrl/expensu/pkg/csv"
	"github.com/yurifrl/expensu/pkg/models"
	"github.com/yurifrl/expensu/pkg/store"
)

// Reader loads every recorded expense.
type Reader interface {
	ReadAll() (*store.Ledger, error)
}

// CategoryTotal is the sum of all valid amounts recorded under one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

type Reporter struct {
	store  Reader
	out    io.Writer
	logger *log.Logger
	title  lipgloss.Style
	warn   lipgloss.Style
}

func New(store Reader, out io.Writer, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.Default()
	}
	renderer := lipgloss.NewRenderer(out)
	return &Reporter{
		store:  store,
		out:    out,
		logger: logger,
		title:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		warn:   renderer.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// ListAll prints every expense accepted by filter, in file order. A nil
// filter accepts everything.
func (r *Reporter) ListAll(filter csv.FilterFunc[*models.Expense]) error {
	ledger, err := r.load()
	if err != nil {
		return err
	}
	selected := make([]*models.Expense, 0, len(ledger.Expenses))
	for _, e := range ledger.Expenses {
		if filter == nil || filter(e) {
			selected = append(selected, e)
		}
	}
	if len(selected) == 0 {
		fmt.Fprintln(r.out, "No expenses recorded.")
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.title.Render("--- All Expenses ---"))
	for _, e := range selected {
		fmt.Fprintf(r.out, "Date: %s, Amount: $%s, Category: %s, Desc: %s\n",
			e.Date(), e.Amount().StringFixed(2), e.Category(), e.Description())
	}
	return nil
}

// ExportCSV writes the expenses accepted by filter as a complete CSV document.
func (r *Reporter) ExportCSV(filter csv.FilterFunc[*models.Expense]) error {
	ledger, err := r.loadQuiet()
	if err != nil {
		return err
	}
	data, err := csv.Create(ledger.Expenses, filter)
	if err != nil {
		return err
	}
	_, err = r.out.Write(data)
	return err
}

// SummaryByCategory prints the total per category in first-seen order.
func (r *Reporter) SummaryByCategory() error {
	ledger, err := r.load()
	if err != nil {
		return err
	}
	if ledger.Empty() {
		fmt.Fprintln(r.out, "No expenses recorded for summary.")
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.title.Render("--- Category Summary ---"))
	for _, ct := range Summarize(ledger.Expenses) {
		fmt.Fprintf(r.out, "%s: $%s\n", ct.Category, ct.Total.StringFixed(2))
	}
	return nil
}

type yamlCategory struct {
	Category string `yaml:"category"`
	Total    string `yaml:"total"`
	Count    int    `yaml:"count"`
}

// WriteSummaryYAML writes the category summary as a YAML sequence.
func (r *Reporter) WriteSummaryYAML() error {
	ledger, err := r.loadQuiet()
	if err != nil {
		return err
	}

	totals := Summarize(ledger.Expenses)
	doc := make([]yamlCategory, 0, len(totals))
	for _, ct := range totals {
		doc = append(doc, yamlCategory{Category: ct.Category, Total: ct.Total.StringFixed(2), Count: ct.Count})
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}

// Summarize sums amounts per category. Categories keep the order in which
// they first appear.
func Summarize(expenses []*models.Expense) []CategoryTotal {
	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)
	for _, e := range expenses {
		i, ok := index[e.Category()]
		if !ok {
			i = len(totals)
			index[e.Category()] = i
			totals = append(totals, CategoryTotal{Category: e.Category()})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount())
		totals[i].Count++
	}
	return totals
}

// load reads the ledger and prints a warning for every row that was skipped.
func (r *Reporter) load() (*store.Ledger, error) {
	ledger, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, rowErr := range ledger.Skipped {
		fmt.Fprintln(r.out, r.warn.Render(fmt.Sprintf("Warning: skipping line %d: %v", rowErr.Line, rowErr.Err)))
	}
	return ledger, nil
}

// loadQuiet is load for machine-readable output: skipped rows go to the log
// only so they cannot corrupt the document.
func (r *Reporter) loadQuiet() (*store.Ledger, error) {
	ledger, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, rowErr := range ledger.Skipped {
		r.logger.Warn("skipping malformed expense", "line", rowErr.Line, "err", rowErr.Err)
	}
	return ledger, nil
}
