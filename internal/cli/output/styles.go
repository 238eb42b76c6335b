package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	FilePath lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles creates the style set. When styled is false every style is a
// no-op, so piped output stays plain.
func NewStyles(styled bool) Styles {
	if !styled {
		plain := lipgloss.NewStyle()
		return Styles{
			Header1:  plain,
			Header2:  plain,
			Bold:     plain,
			Muted:    plain,
			FilePath: plain,
			Success:  plain,
			Error:    plain,
			Warning:  plain,
			Info:     plain,
		}
	}

	return Styles{
		Header1:  lipgloss.NewStyle().Bold(true).Underline(true),
		Header2:  lipgloss.NewStyle().Bold(true),
		Bold:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		FilePath: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}
