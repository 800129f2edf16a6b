package recorder

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/expensu/pkg/console"
	"github.com/yurifrl/expensu/pkg/models"
)

// Appender persists a single expense.
type Appender interface {
	Append(e *models.Expense) error
}

type Recorder struct {
	store   Appender
	console *console.Console
	logger  *log.Logger
	now     func() time.Time
}

type Option func(*Recorder)

// WithClock replaces the clock used to date new expenses.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

func New(store Appender, console *console.Console, logger *log.Logger, opts ...Option) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	r := &Recorder{
		store:   store,
		console: console,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PromptAndAdd asks for amount, category and description and records the
// expense. An unparseable amount discards the whole entry; only errors from
// the store are returned.
func (r *Recorder) PromptAndAdd() error {
	amount, err := r.console.Prompt("Amount ($): ")
	if err != nil {
		return err
	}
	category, err := r.console.Prompt("Category: ")
	if err != nil {
		return err
	}
	description, err := r.console.Prompt("Description: ")
	if err != nil {
		return err
	}

	e, err := r.build(amount, category, description)
	if err != nil {
		r.logger.Debug("rejected expense", "amount", amount, "err", err)
		r.console.Println("Invalid amount. Please enter a number.")
		return nil
	}

	if err := r.store.Append(e); err != nil {
		return err
	}
	r.console.Println("Expense added.")
	return nil
}

// Add records an expense without prompting. Invalid amounts are reported as
// models.ErrInvalidAmount and nothing is written.
func (r *Recorder) Add(amount, category, description string) (*models.Expense, error) {
	e, err := r.build(amount, category, description)
	if err != nil {
		return nil, fmt.Errorf("cannot add expense: %w", err)
	}
	if err := r.store.Append(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Recorder) build(amount, category, description string) (*models.Expense, error) {
	return models.NewExpense().
		SetAmountFromString(amount).
		SetCategory(category).
		SetDescription(description).
		SetDateFromTime(r.now()).
		Build()
}
