package main

import "github.com/charmbracelet/lipgloss"

// Theme defines a color scheme
type Theme struct {
	Name      string
	BG        string
	HeaderBG  string
	HeaderTxt string
	ItemTxt   string
	SelBG     string
	SelTxt    string
	Accent    string
	Dim       string
	Progress  string
	ProgBG    string
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:      "Classic",
		BG:        "#B8B8B8",
		HeaderBG:  "#A0A0A0",
		HeaderTxt: "#000000",
		ItemTxt:   "#000000",
		SelBG:     "#4A90E2",
		SelTxt:    "#FFFFFF",
		Accent:    "#4A90E2",
		Dim:       "#808080",
		Progress:  "#4A90E2",
		ProgBG:    "#909090",
	}

	ThemeDark = Theme{
		Name:      "Dark",
		BG:        "#1C1C1C",
		HeaderBG:  "#0A0A0A",
		HeaderTxt: "#FFFFFF",
		ItemTxt:   "#FFFFFF",
		SelBG:     "#333333",
		SelTxt:    "#FFFFFF",
		Accent:    "#FFFFFF",
		Dim:       "#777777",
		Progress:  "#FFFFFF",
		ProgBG:    "#444444",
	}

	ThemeGreen = Theme{
		Name:      "Matrix Green",
		BG:        "#0D0D0D",
		HeaderBG:  "#001100",
		HeaderTxt: "#00FF41",
		ItemTxt:   "#00FF41",
		SelBG:     "#003300",
		SelTxt:    "#00FF41",
		Accent:    "#00FF41",
		Dim:       "#004400",
		Progress:  "#00FF41",
		ProgBG:    "#002200",
	}

	ThemeNord = Theme{
		Name:      "Nord",
		BG:        "#2E3440",
		HeaderBG:  "#3B4252",
		HeaderTxt: "#ECEFF4",
		ItemTxt:   "#ECEFF4",
		SelBG:     "#5E81AC",
		SelTxt:    "#ECEFF4",
		Accent:    "#88C0D0",
		Dim:       "#4C566A",
		Progress:  "#88C0D0",
		ProgBG:    "#434C5E",
	}

	ThemeSolarized = Theme{
		Name:      "Solarized Dark",
		BG:        "#002B36",
		HeaderBG:  "#073642",
		HeaderTxt: "#93A1A1",
		ItemTxt:   "#839496",
		SelBG:     "#586E75",
		SelTxt:    "#FDF6E3",
		Accent:    "#2AA198",
		Dim:       "#586E75",
		Progress:  "#268BD2",
		ProgBG:    "#073642",
	}

	ThemeGruvbox = Theme{
		Name:      "Gruvbox",
		BG:        "#282828",
		HeaderBG:  "#1D2021",
		HeaderTxt: "#EBDBB2",
		ItemTxt:   "#EBDBB2",
		SelBG:     "#504945",
		SelTxt:    "#FBF1C7",
		Accent:    "#FABD2F",
		Dim:       "#7C6F64",
		Progress:  "#83A598",
		ProgBG:    "#3C3836",
	}
)

// AllThemes returns all available themes in order
func AllThemes() []Theme {
	return []Theme{
		ThemeDark,
		ThemeClassic,
		ThemeGreen,
		ThemeNord,
		ThemeSolarized,
		ThemeGruvbox,
	}
}

// nextTheme returns the theme after current, wrapping around
func nextTheme(current Theme) Theme {
	themes := AllThemes()
	for i, t := range themes {
		if t.Name == current.Name {
			return themes[wrapIndex(i+1, len(themes))]
		}
	}
	return themes[0]
}

// cycleTheme switches to the next theme and saves the preference
func (app *SlidePod) cycleTheme() {
	app.Theme = nextTheme(app.Theme)
	app.invalidateFrames()
	app.Dirty = true
	log.WithField("theme", app.Theme.Name).Info("Theme changed")

	// Save theme preference to settings file (fast)
	app.persistSettings()
}

// Styles derived from the theme for the text parts of the screen
func (t Theme) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(t.HeaderBG)).
		Foreground(lipgloss.Color(t.HeaderTxt)).
		Bold(true)
}

func (t Theme) itemStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.ItemTxt))
}

func (t Theme) selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(t.SelBG)).
		Foreground(lipgloss.Color(t.SelTxt))
}

func (t Theme) dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))
}

func (t Theme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true)
}

func (t Theme) progressStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Progress))
}

func (t Theme) progressBGStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.ProgBG))
}
