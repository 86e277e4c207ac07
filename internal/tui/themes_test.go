package tui

import (
	"testing"
)

func TestValidThemes(t *testing.T) {
	expected := []string{"bumphook", "base", "base16", "catppuccin", "charm", "dracula"}

	if len(ValidThemes) != len(expected) {
		t.Errorf("expected %d valid themes, got %d", len(expected), len(ValidThemes))
	}

	for i, theme := range expected {
		if ValidThemes[i] != theme {
			t.Errorf("expected theme at index %d to be %q, got %q", i, theme, ValidThemes[i])
		}
	}
}

func TestIsValidTheme(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "bumphook theme is valid", theme: "bumphook", expected: true},
		{name: "base theme is valid", theme: "base", expected: true},
		{name: "base16 theme is valid", theme: "base16", expected: true},
		{name: "catppuccin theme is valid", theme: "catppuccin", expected: true},
		{name: "charm theme is valid", theme: "charm", expected: true},
		{name: "dracula theme is valid", theme: "dracula", expected: true},
		{name: "empty string is invalid", theme: "", expected: false},
		{name: "unknown theme is invalid", theme: "unknown", expected: false},
		{name: "case sensitive - BUMPHOOK is invalid", theme: "BUMPHOOK", expected: false},
		{name: "case sensitive - Dracula is invalid", theme: "Dracula", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidTheme(tt.theme)
			if got != tt.expected {
				t.Errorf("IsValidTheme(%q) = %v, want %v", tt.theme, got, tt.expected)
			}
		})
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ValidThemes {
		t.Run(name, func(t *testing.T) {
			if GetTheme(name) == nil {
				t.Errorf("GetTheme(%q) returned nil for a valid theme", name)
			}
		})
	}

	t.Run("unknown theme returns nil", func(t *testing.T) {
		if GetTheme("unknown") != nil {
			t.Error("GetTheme(\"unknown\") returned non-nil, want nil")
		}
	})

	t.Run("empty string returns nil", func(t *testing.T) {
		if GetTheme("") != nil {
			t.Error("GetTheme(\"\") returned non-nil, want nil")
		}
	})
}

func TestSetTheme(t *testing.T) {
	defer resetTheme()

	t.Run("set valid theme", func(t *testing.T) {
		SetTheme("dracula")
		if currentThemeOrDefault() == nil {
			t.Error("currentThemeOrDefault() returned nil after SetTheme(\"dracula\")")
		}
	})

	t.Run("set empty string resets to default", func(t *testing.T) {
		SetTheme("dracula")
		SetTheme("")
		if currentThemeOrDefault() == nil {
			t.Error("currentThemeOrDefault() returned nil after SetTheme(\"\")")
		}
	})

	t.Run("set invalid theme falls back to default", func(t *testing.T) {
		SetTheme("invalid-theme")
		if currentThemeOrDefault() == nil {
			t.Error("currentThemeOrDefault() returned nil after SetTheme(\"invalid-theme\")")
		}
	})
}

func TestResetTheme(t *testing.T) {
	SetTheme("dracula")
	resetTheme()

	if currentThemeOrDefault() == nil {
		t.Error("currentThemeOrDefault() returned nil after resetTheme()")
	}
}
