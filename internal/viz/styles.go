package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle   lipgloss.Style
	Subtle        lipgloss.Style
	KeyHint       lipgloss.Style
	MetricLabel   lipgloss.Style
	MetricValue   lipgloss.Style
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	Panel         lipgloss.Style
)

func init() { applyTheme(CurrentTheme) }

func applyTheme(t Theme) {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	KeyHint = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)
	MetricLabel = lipgloss.NewStyle().Foreground(t.Muted).Width(10)
	MetricValue = lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	StatusPaused = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)
}

// Slider renders a frame slider of the given width with the knob at pos of
// n positions.
func Slider(pos, n, width int) string {
	if width < 1 {
		width = 1
	}
	knob := 0
	if n > 1 {
		knob = pos * (width - 1) / (n - 1)
	}
	if knob < 0 {
		knob = 0
	}
	if knob > width-1 {
		knob = width - 1
	}
	left := strings.Repeat("─", knob)
	right := strings.Repeat("─", width-knob-1)
	return Subtle.Render(left) + lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Render("●") + Subtle.Render(right)
}

func Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return Subtle.Render(strings.Repeat("─", width))
	}
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
