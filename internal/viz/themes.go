package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of cells and chrome.
type Theme struct {
	Name   string
	Live   lipgloss.Color
	Dead   lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Live:   lipgloss.Color("#ff00ff"),
		Dead:   lipgloss.Color("#1a001a"),
		Accent: lipgloss.Color("#00ffff"),
		Muted:  lipgloss.Color("#666688"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Live:   lipgloss.Color("#00ff00"), // green phosphor
		Dead:   lipgloss.Color("#003300"),
		Accent: lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Live:   lipgloss.Color("#ffffff"),
		Dead:   lipgloss.Color("#333333"),
		Accent: lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#888888"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Live:   lipgloss.Color("#feca57"),
		Dead:   lipgloss.Color("#2d1b2e"),
		Accent: lipgloss.Color("#ff6b6b"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
