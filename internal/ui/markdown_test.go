package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownNormalizesTrailingNewlines(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nSome body text.\n", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Fatalf("output does not end in exactly one newline: %q", out)
	}
	if !strings.Contains(out, "Title") {
		t.Fatalf("output lost the heading: %q", out)
	}
}

func TestRenderMarkdownZeroWidthUsesFallback(t *testing.T) {
	if _, err := RenderMarkdown("plain text", 0); err != nil {
		t.Fatalf("RenderMarkdown with width 0: %v", err)
	}
}

func TestConfigureMarkdownCodeTheme(t *testing.T) {
	orig := codeTheme
	defer func() { codeTheme = orig }()

	ConfigureMarkdownCodeTheme("dracula")
	if codeTheme != "dracula" {
		t.Fatalf("codeTheme = %q, want %q", codeTheme, "dracula")
	}
}

func TestConfigureMarkdownCodeThemeRejectsUnknown(t *testing.T) {
	orig := codeTheme
	defer func() { codeTheme = orig }()

	ConfigureMarkdownCodeTheme("not-a-real-theme")
	if codeTheme != orig {
		t.Fatalf("codeTheme = %q, want it unchanged", codeTheme)
	}
	ConfigureMarkdownCodeTheme("")
	if codeTheme != orig {
		t.Fatalf("codeTheme = %q after empty name, want it unchanged", codeTheme)
	}
}

func TestConfigureMarkdownCodeThemeIsCaseInsensitive(t *testing.T) {
	orig := codeTheme
	defer func() { codeTheme = orig }()

	ConfigureMarkdownCodeTheme("DrAcUlA")
	if codeTheme != "dracula" {
		t.Fatalf("codeTheme = %q, want %q", codeTheme, "dracula")
	}
}

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("FLAG", "TYPE", "HELP")
	tbl.AddRow("--verbose", "bool", "say more")
	tbl.AddRow("--n", "int", "")

	out := tbl.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "--verbose  bool") {
		t.Fatalf("unexpected alignment: %q", lines[1])
	}
}
