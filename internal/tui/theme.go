package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// currentTheme holds the currently configured theme for TUI components.
// When nil, currentThemeOrDefault() returns the default bumphook theme.
var currentTheme *huh.Theme

// SetTheme sets the current theme by name.
// Invalid or empty names fall back to the bumphook theme.
func SetTheme(name string) {
	if name == "" {
		currentTheme = nil
		return
	}
	currentTheme = GetTheme(name)
}

// currentThemeOrDefault returns the current theme for TUI components.
// Returns the bumphook theme if no theme has been set.
func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return bumphookTheme()
	}
	return currentTheme
}

// resetTheme resets the current theme to the default.
// This is primarily useful for testing.
func resetTheme() {
	currentTheme = nil
}

// Adaptive colors for the bumphook theme, tuned for light and dark
// terminal backgrounds.
var (
	bumphookAmberPrimary  = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#f59e0b"}
	bumphookAmberBright   = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}
	bumphookTextStrong    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	bumphookTextMuted     = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	bumphookBorderFocused = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#f59e0b"}
	bumphookBorderNormal  = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
	bumphookButtonBg      = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#f59e0b"}
	bumphookButtonText    = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1f2937"}
)

// bumphookTheme builds the default prompt theme: the huh base theme
// with amber accents and rounded borders.
func bumphookTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(bumphookBorderFocused)
	t.Focused.Title = t.Focused.Title.Foreground(bumphookAmberPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(bumphookTextMuted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(bumphookAmberBright)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(bumphookAmberBright)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(bumphookTextStrong)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(bumphookButtonText).
		Background(bumphookButtonBg).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(bumphookTextMuted).
		Padding(0, 1)

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(bumphookBorderNormal)
	t.Blurred.Title = t.Blurred.Title.Foreground(bumphookTextMuted)

	return t
}
