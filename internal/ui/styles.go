package ui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA): flag names, record types, highlights
// - Muted (gray): secondary info, hints
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for flag names, record types, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

// accentColor is the active accent, empty when accent coloring is disabled.
var accentColor = defaultAccent

var hexColorRe = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// NormalizeAccentColor validates a user-supplied accent color. Accepted
// forms are ANSI 256 codes ("0" through "255") and hex colors ("#rrggbb");
// "none" and "off" disable accent coloring. ok is false for anything else.
func NormalizeAccentColor(value string) (normalized string, ok bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "none", "off":
		return "", true
	}
	if hexColorRe.MatchString(v) {
		return v, true
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 255 {
		return strconv.Itoa(n), true
	}
	return "", false
}

// ConfigureTheme applies a configured accent color to the shared styles.
// An empty value keeps the default and an invalid one is ignored, so a bad
// config never breaks output.
func ConfigureTheme(accent string) {
	if strings.TrimSpace(accent) == "" {
		return
	}
	normalized, ok := NormalizeAccentColor(accent)
	if !ok {
		return
	}
	accentColor = normalized
	if normalized == "" {
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	color := lipgloss.Color(normalized)
	Accent = lipgloss.NewStyle().Foreground(color)
	AccentBold = lipgloss.NewStyle().Foreground(color).Bold(true)
}

// AccentColor returns the active accent color; ok is false when accent
// coloring is disabled.
func AccentColor() (color string, ok bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}
