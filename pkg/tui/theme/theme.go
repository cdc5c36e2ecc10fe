package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the outline UI.
type Theme struct {
	Header HeaderTheme
	Row    RowTheme
	Footer FooterTheme
	Panel  PanelTheme
}

// HeaderTheme styles the document title line.
type HeaderTheme struct {
	Title lipgloss.Style
	Count lipgloss.Style
}

// RowTheme styles outline rows.
type RowTheme struct {
	Number   lipgloss.Style
	Heading  lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Changed  lipgloss.Style
	Synopsis lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// PanelTheme styles the scene detail panel.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	heading := lipgloss.NewStyle()
	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Bold(true),
			Count: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Row: RowTheme{
			Number:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Heading:  heading,
			Cursor:   heading.Reverse(true),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Changed:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Synopsis: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// Plain returns a theme without any styling, for tests and dumb terminals.
func Plain() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		Header: HeaderTheme{Title: s, Count: s},
		Row:    RowTheme{Number: s, Heading: s, Cursor: s, Selected: s, Changed: s, Synopsis: s},
		Footer: FooterTheme{Help: s, Status: s},
		Panel:  PanelTheme{Frame: s, Title: s, Body: s},
	}
}
