// Package flagname derives command-line flag names from record field names.
//
// Two naming sources feed the parser:
//   - Go field names: exported CamelCase identifiers, converted to kebab-case.
//   - Declared names: names supplied through tags or programmatic declarations,
//     which may carry underscores, spaces, or arbitrary text and are sanitized
//     into flag-safe tokens.
//
// Nested record fields are joined with a single hyphen, so a field "size"
// under a record field "room1" becomes the flag "room1-size".
package flagname

import (
	"strings"

	goslug "github.com/gosimple/slug"
	"github.com/iancoleman/strcase"
)

// FromGo converts an exported Go field name to its flag name.
//
// Case boundaries become hyphens ("RoomSize" -> "room-size") but digit
// boundaries do not ("Room1" -> "room1"), keeping trailing counters attached
// to the word they number.
func FromGo(name string) string {
	return collapseDigits(strcase.ToKebab(name))
}

// FromDeclared sanitizes a user-declared field or flag name.
//
// Underscores and spaces become hyphens; anything that still is not a valid
// flag token goes through slug sanitation.
func FromDeclared(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	if Valid(s) {
		return s
	}
	return goslug.Make(s)
}

// Join combines a nesting prefix with a flag name.
func Join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "-" + name
}

// Valid reports whether s can be declared as a long flag name: non-empty,
// lowercase alphanumerics and hyphens, starting and ending alphanumeric.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-':
			if i == 0 || i == len(s)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// collapseDigits removes the hyphen a case converter inserts before a digit
// run, so "room-1" reads "room1" while word boundaries stay hyphenated.
func collapseDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '-' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' && i > 0 {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
