package styles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/contactus/internal/runner"
)

const (
	maxErrorWidth = 80
	reportTitle   = "Contact form checks"
)

// notRun reports whether res was skipped because the run was interrupted
// before it started.
func notRun(res runner.Result) bool {
	return errors.Is(res.Err, context.Canceled)
}

// RenderReport renders the per-scenario table followed by a summary line and
// the full text of every failure. Scenarios an interruption kept from starting
// are marked SKIP and left out of the failure details.
func RenderReport(t *Theme, report runner.Report) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers("SCENARIO", "RESULT", "TIME", "DETAIL").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
		})

	skipped := 0
	for _, res := range report.Results {
		badge := t.PassBadge()
		detail := ""
		switch {
		case notRun(res):
			skipped++
			badge = t.MutedBadge("SKIP")
			detail = "not run"
		case !res.Passed():
			badge = t.FailBadge()
			detail = truncate(firstLine(res.Err.Error()), maxErrorWidth)
		}
		tbl.Row(res.Name, badge, FormatDuration(res.Duration), detail)
	}

	var b strings.Builder
	b.WriteString(t.Title.Render(reportTitle))
	b.WriteString("\n")
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	b.WriteString(RenderSummary(t, report))
	if skipped > 0 {
		b.WriteString("\n")
		b.WriteString(t.WarningStyle.Render(fmt.Sprintf("run interrupted: %d scenario(s) not run", skipped)))
	}

	failures := 0
	for _, res := range report.Results {
		if res.Passed() || notRun(res) {
			continue
		}
		if failures == 0 {
			b.WriteString("\n\n")
			b.WriteString(t.BoxHeader.Render("Failures"))
			b.WriteString("\n")
		}
		failures++
		b.WriteString(t.ErrorStyle.Render(res.Name))
		b.WriteString("\n  ")
		b.WriteString(strings.ReplaceAll(res.Err.Error(), "\n", "\n  "))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSummary renders "N passed, M failed in D".
func RenderSummary(t *Theme, report runner.Report) string {
	passed := t.SuccessStyle.Render(fmt.Sprintf("%d passed", report.Passed()))
	failedText := fmt.Sprintf("%d failed", report.Failed())
	failed := t.Subtle.Render(failedText)
	if report.Failed() > 0 {
		failed = t.ErrorStyle.Bold(true).Render(failedText)
	}
	return fmt.Sprintf("%s, %s %s", passed, failed, t.Subtle.Render("in "+FormatDuration(report.Elapsed)))
}

// FormatDuration rounds d for display: milliseconds under a second, tenths
// of a second above.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
