// Package model holds the Bubble Tea models behind the interactive commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/contactus/internal/cli/styles"
	"github.com/bnema/contactus/internal/runner"
)

// ScenarioStartedMsg is sent when the runner begins a scenario.
type ScenarioStartedMsg struct {
	Name         string
	Index, Total int
}

// ScenarioFinishedMsg is sent when a scenario ends.
type ScenarioFinishedMsg struct {
	Result       runner.Result
	Index, Total int
}

// RunDoneMsg is sent once the whole run is over.
type RunDoneMsg struct {
	Report runner.Report
}

// ProgramObserver forwards runner progress into a running tea.Program.
type ProgramObserver struct {
	Send func(tea.Msg)
}

var _ runner.Observer = ProgramObserver{}

// ScenarioStarted implements runner.Observer.
func (o ProgramObserver) ScenarioStarted(name string, index, total int) {
	o.Send(ScenarioStartedMsg{Name: name, Index: index, Total: total})
}

// ScenarioFinished implements runner.Observer.
func (o ProgramObserver) ScenarioFinished(res runner.Result, index, total int) {
	o.Send(ScenarioFinishedMsg{Result: res, Index: index, Total: total})
}

// RunModel shows live progress of a suite run.
type RunModel struct {
	theme   *styles.Theme
	loading styles.LoadingModel
	cancel  context.CancelFunc

	total       int
	current     string
	finished    []runner.Result
	report      runner.Report
	done        bool
	interrupted bool
}

// NewRunModel creates a progress model for total scenarios. cancel is called
// when the user interrupts; the model keeps running until RunDoneMsg arrives
// so the partial report is still shown.
func NewRunModel(theme *styles.Theme, total int, cancel context.CancelFunc) RunModel {
	return RunModel{
		theme:   theme,
		loading: styles.NewLoading(theme, "starting browser..."),
		cancel:  cancel,
		total:   total,
	}
}

// Init implements tea.Model.
func (m RunModel) Init() tea.Cmd {
	return m.loading.Spinner.Tick
}

// Update implements tea.Model.
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ScenarioStartedMsg:
		m.current = msg.Name
		m.total = msg.Total
		m.loading.Message = fmt.Sprintf("[%d/%d] %s", msg.Index+1, msg.Total, msg.Name)
		return m, nil

	case ScenarioFinishedMsg:
		m.finished = append(m.finished, msg.Result)
		m.current = ""
		return m, nil

	case RunDoneMsg:
		m.report = msg.Report
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.interrupted {
				m.interrupted = true
				m.loading.Message = "interrupting, finishing current scenario..."
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loading.Spinner, cmd = m.loading.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Done reports whether RunDoneMsg was received.
func (m RunModel) Done() bool {
	return m.done
}

// Interrupted reports whether the user asked to stop.
func (m RunModel) Interrupted() bool {
	return m.interrupted
}

// Report returns the final report once Done.
func (m RunModel) Report() runner.Report {
	return m.report
}

// View implements tea.Model.
func (m RunModel) View() string {
	t := m.theme
	var b strings.Builder

	for _, res := range m.finished {
		badge := t.PassBadge()
		if !res.Passed() {
			badge = t.FailBadge()
		}
		fmt.Fprintf(&b, "%s %s %s\n", badge, t.Normal.Render(res.Name), t.Subtle.Render(styles.FormatDuration(res.Duration)))
	}

	if m.done {
		return b.String()
	}

	b.WriteString(m.loading.View())
	b.WriteString("\n")
	if m.interrupted {
		b.WriteString(t.WarningStyle.Render(fmt.Sprintf("%d/%d done · interrupted, remaining scenarios will be skipped", len(m.finished), m.total)))
	} else {
		b.WriteString(t.Subtle.Render(fmt.Sprintf("%d/%d done · q to stop", len(m.finished), m.total)))
	}
	b.WriteString("\n")
	return b.String()
}
