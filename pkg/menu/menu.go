// Package menu runs the interactive main menu. The menu has a single state:
// every choice other than Exit runs one action and returns to the menu.
package menu

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/expensu/pkg/console"
	"github.com/yurifrl/expensu/pkg/csv"
	"github.com/yurifrl/expensu/pkg/models"
)

const banner = "\n💰 Expense Tracker\n1. Add\n2. View\n3. Summary\n4. Exit"

type Choice string

const (
	Add     Choice = "1"
	View    Choice = "2"
	Summary Choice = "3"
	Exit    Choice = "4"
)

type Recorder interface {
	PromptAndAdd() error
}

type Reporter interface {
	ListAll(filter csv.FilterFunc[*models.Expense]) error
	SummaryByCategory() error
}

type Menu struct {
	console  *console.Console
	recorder Recorder
	reporter Reporter
	logger   *log.Logger
}

func New(console *console.Console, recorder Recorder, reporter Reporter, logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.Default()
	}
	return &Menu{
		console:  console,
		recorder: recorder,
		reporter: reporter,
		logger:   logger,
	}
}

// Run shows the menu until the user picks Exit or input ends. Failed actions
// are reported and the loop goes on; only input errors stop it.
func (m *Menu) Run() error {
	for {
		m.console.Println(banner)
		line, err := m.console.Prompt("Enter choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				m.logger.Debug("input closed, leaving menu")
				return nil
			}
			return err
		}

		choice := Choice(strings.TrimSpace(line))
		if choice == Exit {
			m.console.Println("Goodbye! 👋")
			return nil
		}

		if err := m.dispatch(choice); err != nil {
			if errors.Is(err, io.EOF) {
				m.logger.Debug("input closed during action, leaving menu")
				return nil
			}
			m.logger.Error("action failed", "choice", string(choice), "err", err)
			m.console.Printf("Error: %v\n", err)
		}
	}
}

func (m *Menu) dispatch(choice Choice) error {
	switch choice {
	case Add:
		return m.recorder.PromptAndAdd()
	case View:
		return m.reporter.ListAll(nil)
	case Summary:
		return m.reporter.SummaryByCategory()
	default:
		m.console.Println("Invalid choice.")
		return nil
	}
}
