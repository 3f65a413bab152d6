package progress

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sobolvd/internal/sweep"
)

func TestModelUpdate(t *testing.T) {
	m := New("sweep", 4)

	next, _ := m.Update(StepMsg{Done: 1, Total: 4, T: 1.5})
	m = next.(Model)
	if m.Percent() != 0.25 {
		t.Errorf("Percent() = %v, want 0.25", m.Percent())
	}
	if !strings.Contains(m.View(), "1/4 temperatures") {
		t.Errorf("view missing count:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "last T=1.5K") {
		t.Errorf("view missing temperature:\n%s", m.View())
	}

	next, cmd := m.Update(DoneMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("DoneMsg should quit")
	}
	if strings.Contains(m.View(), "q to cancel") {
		t.Error("finished view should not offer cancel")
	}
}

func TestModelCancel(t *testing.T) {
	next, cmd := New("sweep", 2).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(Model).Cancelled() {
		t.Error("q should cancel")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestETA(t *testing.T) {
	m := New("sweep", 4)
	m.done = 1
	m.now = m.started.Add(10 * time.Second)
	if got := m.ETA(); got != 30*time.Second {
		t.Errorf("ETA() = %v, want 30s", got)
	}
	m.done = 4
	if m.ETA() != 0 {
		t.Error("ETA should be zero when done")
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	calls := 0
	err := Run(context.Background(), "sweep", 3, func(ctx context.Context, progress sweep.ProgressFunc) error {
		for i := 1; i <= 3; i++ {
			progress(i, 3, float64(i))
			calls++
		}
		return nil
	}, tea.WithInput(nil), tea.WithOutput(&out))
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("calls = %d", calls)
	}
}

func TestRunPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), "sweep", 1, func(ctx context.Context, progress sweep.ProgressFunc) error {
		return boom
	}, tea.WithInput(nil), tea.WithOutput(&bytes.Buffer{}))
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want boom", err)
	}
}
