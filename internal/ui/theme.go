package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines a set of semantic colors used to build the UI styles.
type Theme struct {
	Name      string
	Slug      string
	Fg        string // primary text, metadata values, log lines
	Accent    string // labels, active items, inset borders
	Secondary string // header bg, panel borders, help bg
	Bg        string // app background, active item text
	Success   string // running indicator
	Muted     string // hints, idle metadata
	Error     string // error messages
}

// Themes is the ordered list of all built-in themes.
var Themes = []Theme{
	themeVintage(),
	themeTokyoNight(),
	themeNord(),
	themeGruvboxDark(),
	themeDracula(),
}

// ThemeBySlug returns the theme with the given slug, falling back to Vintage.
func ThemeBySlug(slug string) Theme {
	for _, t := range Themes {
		if t.Slug == slug {
			return t
		}
	}
	return Themes[0]
}

// BuildStyles constructs the full Styles set from a theme.
func BuildStyles(t Theme) Styles {
	fg := lipgloss.Color(t.Fg)
	accent := lipgloss.Color(t.Accent)
	secondary := lipgloss.Color(t.Secondary)
	bg := lipgloss.Color(t.Bg)
	success := lipgloss.Color(t.Success)
	muted := lipgloss.Color(t.Muted)
	errColor := lipgloss.Color(t.Error)

	border := lipgloss.RoundedBorder()

	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2).
			Foreground(fg).
			Background(bg),
		Header: lipgloss.NewStyle().
			Foreground(fg).
			Background(secondary).
			Padding(0, 1).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(border).
			BorderForeground(secondary).
			Padding(1, 2),
		InsetPanel: lipgloss.NewStyle().
			Border(border).
			BorderForeground(accent).
			Padding(1, 2),
		Label: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		StationName: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),
		Meta: lipgloss.NewStyle().
			Foreground(muted),
		LogText: lipgloss.NewStyle().
			Foreground(muted),
		ListHeader: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		ListItem: lipgloss.NewStyle().
			Foreground(fg),
		ListActive: lipgloss.NewStyle().
			Foreground(bg).
			Background(accent).
			Bold(true),
		KeyHint: lipgloss.NewStyle().
			Foreground(muted),
		HelpBox: lipgloss.NewStyle().
			Border(border).
			BorderForeground(accent).
			Padding(1, 2).
			Background(secondary).
			Foreground(fg),
		Error: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(accent),
		Success: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
	}
}

func themeVintage() Theme {
	return Theme{
		Name:      "Vintage",
		Slug:      "vintage",
		Fg:        "#F5E6C8",
		Accent:    "#D9A441",
		Secondary: "#6E4A2F",
		Bg:        "#2B1A12",
		Success:   "#6A8F4E",
		Muted:     "#B89C7A",
		Error:     "#F29F8E",
	}
}

func themeTokyoNight() Theme {
	return Theme{
		Name:      "Tokyo Night",
		Slug:      "tokyo-night",
		Fg:        "#C0CAF5",
		Accent:    "#7AA2F7",
		Secondary: "#24283B",
		Bg:        "#1A1B26",
		Success:   "#9ECE6A",
		Muted:     "#565F89",
		Error:     "#F7768E",
	}
}

func themeNord() Theme {
	return Theme{
		Name:      "Nord",
		Slug:      "nord",
		Fg:        "#ECEFF4",
		Accent:    "#88C0D0",
		Secondary: "#3B4252",
		Bg:        "#2E3440",
		Success:   "#A3BE8C",
		Muted:     "#4C566A",
		Error:     "#BF616A",
	}
}

func themeGruvboxDark() Theme {
	return Theme{
		Name:      "Gruvbox Dark",
		Slug:      "gruvbox-dark",
		Fg:        "#EBDBB2",
		Accent:    "#FABD2F",
		Secondary: "#3C3836",
		Bg:        "#282828",
		Success:   "#B8BB26",
		Muted:     "#928374",
		Error:     "#FB4934",
	}
}

func themeDracula() Theme {
	return Theme{
		Name:      "Dracula",
		Slug:      "dracula",
		Fg:        "#F8F8F2",
		Accent:    "#BD93F9",
		Secondary: "#44475A",
		Bg:        "#282A36",
		Success:   "#50FA7B",
		Muted:     "#6272A4",
		Error:     "#FF5555",
	}
}
