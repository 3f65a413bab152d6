package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sobolvd/internal/plot"
	"github.com/san-kum/sobolvd/internal/sweep"
)

const barWidth = 40

// StepMsg reports one completed temperature.
type StepMsg struct {
	Done  int
	Total int
	T     float64
}

// DoneMsg ends the view. Err is the sweep's result.
type DoneMsg struct {
	Err error
}

type Model struct {
	title     string
	total     int
	done      int
	lastT     float64
	started   time.Time
	now       time.Time
	spinner   spinner.Model
	bar       progressbar.Model
	finished  bool
	cancelled bool
	err       error
}

func New(title string, total int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = plot.TitleStyle

	now := time.Now()
	return Model{
		title:   title,
		total:   total,
		started: now,
		now:     now,
		spinner: sp,
		bar:     progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(barWidth)),
	}
}

func (m Model) Init() tea.Cmd { return m.spinner.Tick }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil
	case StepMsg:
		m.done = msg.Done
		m.total = msg.Total
		m.lastT = msg.T
		return m, nil
	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	case spinner.TickMsg:
		m.now = msg.Time
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) Percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m Model) Cancelled() bool { return m.cancelled }

// ETA extrapolates the remaining time from the average per temperature.
func (m Model) ETA() time.Duration {
	if m.done == 0 || m.done >= m.total {
		return 0
	}
	elapsed := m.now.Sub(m.started)
	return elapsed / time.Duration(m.done) * time.Duration(m.total-m.done)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(plot.TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	status := m.spinner.View()
	if m.finished {
		status = "✓"
		if m.err != nil {
			status = "✗"
		}
	}
	b.WriteString(fmt.Sprintf("%s %s\n", status, m.bar.ViewAs(m.Percent())))

	line := fmt.Sprintf("%d/%d temperatures", m.done, m.total)
	if m.done > 0 {
		line += fmt.Sprintf("  last T=%gK", m.lastT)
	}
	line += fmt.Sprintf("  elapsed %s", m.now.Sub(m.started).Round(time.Second))
	if eta := m.ETA(); eta > 0 {
		line += fmt.Sprintf("  eta %s", eta.Round(time.Second))
	}
	b.WriteString(plot.Subtle.Render(line))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(fmt.Sprintf("\nerror: %v\n", m.err))
	}
	if !m.finished {
		b.WriteString(plot.Subtle.Render("\nq to cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

// Run shows the progress view while fn runs. fn receives a context that is
// cancelled when the user quits, and a callback for sweep.WithProgress.
func Run(ctx context.Context, title string, total int, fn func(context.Context, sweep.ProgressFunc) error, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(title, total), opts...)

	errCh := make(chan error, 1)
	go func() {
		err := fn(ctx, func(done, total int, t float64) {
			p.Send(StepMsg{Done: done, Total: total, T: t})
		})
		p.Send(DoneMsg{Err: err})
		errCh <- err
	}()

	final, runErr := p.Run()
	if m, ok := final.(Model); !ok || m.cancelled || runErr != nil {
		cancel()
	}

	err := <-errCh
	if err != nil {
		return err
	}
	return runErr
}
