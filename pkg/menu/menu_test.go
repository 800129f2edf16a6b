package menu

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/yurifrl/expensu/pkg/console"
	"github.com/yurifrl/expensu/pkg/csv"
	"github.com/yurifrl/expensu/pkg/models"
	"github.com/yurifrl/expensu/pkg/recorder"
	"github.com/yurifrl/expensu/pkg/reporter"
	"github.com/yurifrl/expensu/pkg/store"
)

type fakeRecorder struct {
	calls int
	err   error
}

func (f *fakeRecorder) PromptAndAdd() error {
	f.calls++
	return f.err
}

type fakeReporter struct {
	lists     int
	summaries int
}

func (f *fakeReporter) ListAll(csv.FilterFunc[*models.Expense]) error {
	f.lists++
	return nil
}

func (f *fakeReporter) SummaryByCategory() error {
	f.summaries++
	return nil
}

func TestDispatch(t *testing.T) {
	var out bytes.Buffer
	rec := &fakeRecorder{}
	rep := &fakeReporter{}
	m := New(console.New(strings.NewReader("1\n2\n 3 \n9\n2\n4\n1\n"), &out), rec, rep, log.Default())

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if rec.calls != 1 || rep.lists != 2 || rep.summaries != 1 {
		t.Errorf("unexpected calls: add=%d list=%d summary=%d", rec.calls, rep.lists, rep.summaries)
	}
	got := out.String()
	if strings.Count(got, "Invalid choice.") != 1 {
		t.Errorf("expected one invalid choice message in %q", got)
	}
	if !strings.HasSuffix(got, "Goodbye! 👋\n") {
		t.Errorf("expected farewell at the end of %q", got)
	}
	if strings.Count(got, "Enter choice: ") != 6 {
		t.Errorf("expected 6 prompts in %q", got)
	}
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	var out bytes.Buffer
	m := New(console.New(strings.NewReader("2\n"), &out), &fakeRecorder{}, &fakeReporter{}, log.Default())

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.Contains(out.String(), "Goodbye") {
		t.Errorf("did not expect farewell on end of input: %q", out.String())
	}
}

func TestActionErrorKeepsLoopAlive(t *testing.T) {
	var out bytes.Buffer
	rec := &fakeRecorder{err: errors.New("permission denied")}
	m := New(console.New(strings.NewReader("1\n1\n4\n"), &out), rec, &fakeReporter{}, log.Default())

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rec.calls != 2 {
		t.Errorf("expected 2 add attempts, got %d", rec.calls)
	}
	if strings.Count(out.String(), "Error: permission denied") != 2 {
		t.Errorf("expected error reported twice in %q", out.String())
	}
}

func TestSession(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	input := strings.Join([]string{
		"1", "12.50", "Food", "Lunch",
		"1", "abc", "Food", "Dinner",
		"1", "20", "Transport", "Taxi, late",
		"1", "2.5", "Food", "",
		"2",
		"3",
		"4",
	}, "\n") + "\n"

	c := console.New(strings.NewReader(input), &out)
	s := store.New(fs, "expenses.csv", &out, log.Default())
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("EnsureInitialized failed: %v", err)
	}
	now := func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local) }
	m := New(c, recorder.New(s, c, log.Default(), recorder.WithClock(now)), reporter.New(s, &out, log.Default()), log.Default())

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Invalid amount. Please enter a number.",
		"Date: 2024-05-01, Amount: $12.50, Category: Food, Desc: Lunch",
		"Date: 2024-05-01, Amount: $20.00, Category: Transport, Desc: Taxi, late",
		"Food: $15.00",
		"Transport: $20.00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Count(got, "Expense added.") != 3 {
		t.Errorf("expected 3 added expenses in:\n%s", got)
	}

	data, err := afero.ReadFile(fs, "expenses.csv")
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	expected := "Date,Amount,Category,Description\n" +
		"2024-05-01,12.5,Food,Lunch\n" +
		"2024-05-01,20,Transport,\"Taxi, late\"\n" +
		"2024-05-01,2.5,Food,\n"
	if string(data) != expected {
		t.Errorf("expected file %q, got %q", expected, string(data))
	}
}
