package model

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/contactus/internal/cli/styles"
	"github.com/bnema/contactus/internal/runner"
)

func update(t *testing.T, m RunModel, msg tea.Msg) (RunModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(RunModel)
	require.True(t, ok)
	return rm, cmd
}

func TestRunModel_Progress(t *testing.T) {
	m := NewRunModel(styles.NewTheme(), 2, nil)
	assert.NotNil(t, m.Init())

	m, _ = update(t, m, ScenarioStartedMsg{Name: "page_title", Index: 0, Total: 2})
	assert.Contains(t, m.View(), "[1/2] page_title")

	m, _ = update(t, m, ScenarioFinishedMsg{Result: runner.Result{Name: "page_title", Duration: time.Second}, Index: 0, Total: 2})
	m, _ = update(t, m, ScenarioStartedMsg{Name: "invalid_email", Index: 1, Total: 2})
	m, _ = update(t, m, ScenarioFinishedMsg{Result: runner.Result{Name: "invalid_email", Err: errors.New("nope")}, Index: 1, Total: 2})

	view := m.View()
	assert.Contains(t, view, "PASS")
	assert.Contains(t, view, "FAIL")
	assert.Contains(t, view, "2/2 done")
	assert.False(t, m.Done())

	report := runner.Report{Results: []runner.Result{{Name: "page_title"}}}
	m, cmd := update(t, m, RunDoneMsg{Report: report})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Done())
	assert.Equal(t, report, m.Report())
	assert.NotContains(t, m.View(), "done ·")
}

func TestRunModel_InterruptCancelsOnce(t *testing.T) {
	calls := 0
	m := NewRunModel(styles.NewTheme(), 9, func() { calls++ })

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.Equal(t, 1, calls)
	assert.True(t, m.Interrupted())
	assert.False(t, m.Done())
	assert.Contains(t, m.View(), "interrupting")
	assert.Contains(t, m.View(), "remaining scenarios will be skipped")
	assert.NotContains(t, m.View(), "q to stop")
}

func TestProgramObserver(t *testing.T) {
	var msgs []tea.Msg
	obs := ProgramObserver{Send: func(msg tea.Msg) { msgs = append(msgs, msg) }}

	obs.ScenarioStarted("a", 0, 1)
	obs.ScenarioFinished(runner.Result{Name: "a"}, 0, 1)

	assert.Equal(t, []tea.Msg{
		ScenarioStartedMsg{Name: "a", Index: 0, Total: 1},
		ScenarioFinishedMsg{Result: runner.Result{Name: "a"}, Index: 0, Total: 1},
	}, msgs)
}
