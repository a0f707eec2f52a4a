package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	ID      lipgloss.Style
	Panel   lipgloss.Style
	Section lipgloss.Style
}

func newStyles(out io.Writer, isTTY bool) *Styles {
	lg := lipgloss.NewRenderer(out)
	if !isTTY {
		lg.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header1: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lg.NewStyle().Bold(true),
		Bold:    lg.NewStyle().Bold(true),
		Muted:   lg.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lg.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lg.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lg.NewStyle().Foreground(lipgloss.Color("9")),
		ID:      lg.NewStyle().Foreground(lipgloss.Color("14")),
		Panel: lg.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		Section: lg.NewStyle().Bold(true).Underline(true),
	}
}
