package ui

import "fmt"

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
)

// Success returns a success message with a checkmark symbol.
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Successf returns a formatted success message with a checkmark symbol.
func Successf(format string, args ...any) string {
	return Success(fmt.Sprintf(format, args...))
}

// Warning returns a warning message with a warning symbol.
func Warning(msg string) string {
	return fmt.Sprintf("%s %s", SymbolWarning, msg)
}

// Header returns a styled section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// Hint returns muted hint text.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Flag returns an accent-styled flag name.
func Flag(name string) string {
	return Accent.Render("--" + name)
}
