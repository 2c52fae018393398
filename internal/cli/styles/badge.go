package styles

import "github.com/charmbracelet/lipgloss"

// PassBadge renders the PASS marker.
func (t *Theme) PassBadge() string {
	return t.Badge.Render("PASS")
}

// FailBadge renders the FAIL marker.
func (t *Theme) FailBadge() string {
	return t.StatusBadge("FAIL", t.Text, t.Error)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}
