package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ossinfo/pkg/inventory"
)

// maxRecentFailures bounds the failure list shown under the progress bar.
const maxRecentFailures = 5

var (
	tuiTitleStyle = StyleTitle.MarginBottom(1)
	tuiHelpStyle  = lipgloss.NewStyle().Foreground(colorDim).MarginTop(1)
)

// =============================================================================
// collectModel - Lookup progress view
// =============================================================================

// lookupMsg reports one finished lookup.
type lookupMsg inventory.Entry

// collectDoneMsg is sent once Collect has returned.
type collectDoneMsg struct{}

// collectModel is the bubbletea model behind `collect --tui`.
type collectModel struct {
	Total    int
	Done     int
	Failed   int
	Current  string
	Failures []string // most recent first
	Finished bool
	Aborted  bool

	bar    bprogress.Model
	cancel context.CancelFunc
}

func newCollectModel(total int, cancel context.CancelFunc) collectModel {
	return collectModel{
		Total:  total,
		bar:    bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(40)),
		cancel: cancel,
	}
}

func (m collectModel) Init() tea.Cmd {
	return nil
}

func (m collectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-4, 60))
	case lookupMsg:
		m.Done++
		m.Current = msg.Dependency
		if msg.Err != nil {
			m.Failed++
			m.Failures = append([]string{msg.Dependency}, m.Failures...)
			if len(m.Failures) > maxRecentFailures {
				m.Failures = m.Failures[:maxRecentFailures]
			}
		}
	case collectDoneMsg:
		m.Finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m collectModel) percent() float64 {
	if m.Total == 0 {
		return 1
	}
	return float64(m.Done) / float64(m.Total)
}

func (m collectModel) View() string {
	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render("Looking up dependencies"))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d done", m.Done, m.Total)))
	if m.Failed > 0 {
		b.WriteString(StyleDim.Render(" · "))
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%d failed", m.Failed)))
	}
	if m.Current != "" && !m.Finished {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(iconInfo + " " + m.Current))
	}
	for _, f := range m.Failures {
		b.WriteString("\n")
		b.WriteString(styleIconError.Render(iconError) + " " + f)
	}
	if !m.Finished {
		b.WriteString(tuiHelpStyle.Render("\nq: abort"))
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Runner
// =============================================================================

// runCollectTUI runs Collect behind the progress view. Warnings are not
// logged while the view is active; the caller reports failed entries
// afterwards.
func runCollectTUI(ctx context.Context, coords []string, f inventory.Fetcher, opts inventory.Options) (*inventory.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newCollectModel(len(coords), cancel), tea.WithOutput(os.Stderr))

	opts.Logger = nil
	opts.OnResult = func(e inventory.Entry) { p.Send(lookupMsg(e)) }

	var (
		rep  *inventory.Report
		err  error
		done = make(chan struct{})
	)
	go func() {
		defer close(done)
		rep, err = inventory.Collect(ctx, coords, f, opts)
		p.Send(collectDoneMsg{})
	}()

	if _, runErr := p.Run(); runErr != nil {
		cancel()
		<-done
		return nil, runErr
	}
	<-done
	return rep, err
}
