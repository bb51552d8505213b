package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/easy-qfnu/portal-client/internal/prefs"
)

// Theme holds the palette for one appearance.
type Theme struct {
	Name       string
	Text       string
	Muted      string
	Border     string
	Background string
	Primary    string
	Success    string
	Warning    string
	Danger     string
	Info       string
}

var (
	lightTheme = Theme{
		Name:       prefs.ThemeLight,
		Text:       "#1C1C1E",
		Muted:      "#8E8E93",
		Border:     "#E5E5EA",
		Background: "#FFFFFF",
		Primary:    "#885021",
		Success:    "#34C759",
		Warning:    "#FF9500",
		Danger:     "#FF3B30",
		Info:       "#007AFF",
	}
	darkTheme = Theme{
		Name:       prefs.ThemeDark,
		Text:       "#FFFFFF",
		Muted:      "#98989D",
		Border:     "#38383A",
		Background: "#1C1C1E",
		Primary:    "#A67C52",
		Success:    "#34C759",
		Warning:    "#FF9500",
		Danger:     "#FF3B30",
		Info:       "#007AFF",
	}
)

// GetTheme returns the named theme, light when unknown.
func GetTheme(name string) Theme {
	if prefs.NormalizeTheme(name) == prefs.ThemeDark {
		return darkTheme
	}
	return lightTheme
}

// statusCodeColors colours the status-code breakdown.
var statusCodeColors = map[int]string{
	200: "#34C759",
	201: "#22D3EE",
	400: "#FF9500",
	401: "#F97316",
	403: "#FF3B30",
	404: "#A855F7",
	500: "#DC2626",
}

// StatusCodeColor returns the colour for an HTTP status code.
func StatusCodeColor(code int) string {
	if c, ok := statusCodeColors[code]; ok {
		return c
	}
	return "#6B7280"
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Info      lipgloss.Style
	Danger    lipgloss.Style
	Success   lipgloss.Style
	Card      lipgloss.Style
	CardValue lipgloss.Style
	Panel     lipgloss.Style
	Header    lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Bold(true),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1).
			Width(18),
		CardValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Bold(true),
	}
}
