package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/yurifrl/expensu/pkg/csv"
	"github.com/yurifrl/expensu/pkg/models"
)

// DefaultPath is the record file used when nothing else is configured.
const DefaultPath = "expenses.csv"

// Ledger is the decoded content of the record file.
type Ledger struct {
	Expenses []*models.Expense
	Skipped  []*csv.RowError
}

// Empty reports whether the ledger holds no valid expense.
func (l *Ledger) Empty() bool {
	return len(l.Expenses) == 0
}

// Store owns the record file. Every operation opens the file, works on it and
// closes it again; nothing is kept open between calls.
type Store struct {
	fs     afero.Fs
	path   string
	out    io.Writer
	logger *log.Logger
}

func New(fs afero.Fs, path string, out io.Writer, logger *log.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		fs:     fs,
		path:   path,
		out:    out,
		logger: logger,
	}
}

func (s *Store) Path() string {
	return s.path
}

// EnsureInitialized creates the record file with its header line when it does
// not exist yet. Existing files are never touched.
func (s *Store) EnsureInitialized() (err error) {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("failed to stat expense file %s: %w", s.path, err)
	}
	if exists {
		s.logger.Debug("expense file already exists", "path", s.path)
		return nil
	}

	f, err := s.fs.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create expense file %s: %w", s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close expense file %s: %w", s.path, cerr)
		}
	}()

	if err := csv.WriteHeader(f); err != nil {
		return fmt.Errorf("failed to initialize expense file %s: %w", s.path, err)
	}

	s.logger.Info("created expense file", "path", s.path)
	fmt.Fprintf(s.out, "✅ Created new expense file: %s\n", s.path)
	return nil
}

// Append writes one expense line at the end of the record file. A missing
// file is recreated with its header first.
func (s *Store) Append(e *models.Expense) (err error) {
	if err := s.EnsureInitialized(); err != nil {
		return err
	}

	f, err := s.fs.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open expense file %s: %w", s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close expense file %s: %w", s.path, cerr)
		}
	}()

	if err := csv.Write(f, e); err != nil {
		return fmt.Errorf("failed to append to expense file %s: %w", s.path, err)
	}

	s.logger.Debug("appended expense", "path", s.path, "date", e.Date(), "amount", e.Amount(), "category", e.Category())
	return nil
}

// ReadAll decodes every data row of the record file. A missing file is
// reported on the output writer and yields an empty ledger.
func (s *Store) ReadAll() (*Ledger, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(s.out, "Error: File '%s' not found.\n", s.path)
			return &Ledger{}, nil
		}
		return nil, fmt.Errorf("failed to open expense file %s: %w", s.path, err)
	}
	defer f.Close()

	expenses, skipped, err := csv.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read expense file %s: %w", s.path, err)
	}

	for _, rowErr := range skipped {
		s.logger.Debug("skipping malformed row", "path", s.path, "line", rowErr.Line, "row", rowErr.Raw, "err", rowErr.Err)
	}
	s.logger.Debug("read expense file", "path", s.path, "expenses", len(expenses), "skipped", len(skipped))

	return &Ledger{Expenses: expenses, Skipped: skipped}, nil
}
