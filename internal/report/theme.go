package report

import "charm.land/lipgloss/v2"

// Palette
var (
	Primary   = lipgloss.Color("#8B5CF6")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F97316")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

// styles holds every style the renderer uses. The plain set carries no
// colors or borders so output stays readable in pipes and logs.
type styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Dim     lipgloss.Style
	Good    lipgloss.Style
	Warn    lipgloss.Style
	Bad     lipgloss.Style
	Card    lipgloss.Style

	BarFilled lipgloss.Style
	BarEmpty  lipgloss.Style
}

func colorStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary),
		Label: lipgloss.NewStyle().
			Foreground(TextDim),
		Value: lipgloss.NewStyle().
			Foreground(Text),
		Dim: lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true),
		Good: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),
		Warn: lipgloss.NewStyle().
			Foreground(Accent),
		Bad: lipgloss.NewStyle().
			Foreground(Error).
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		BarFilled: lipgloss.NewStyle().
			Foreground(Secondary),
		BarEmpty: lipgloss.NewStyle().
			Foreground(Border),
	}
}

func plainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{
		Title:     plain,
		Heading:   plain,
		Label:     plain,
		Value:     plain,
		Dim:       plain,
		Good:      plain,
		Warn:      plain,
		Bad:       plain,
		Card:      plain,
		BarFilled: plain,
		BarEmpty:  plain,
	}
}
