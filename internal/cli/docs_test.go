package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestListDocTopicsLoadsEmbeddedDocs(t *testing.T) {
	t.Parallel()

	topics, err := listDocTopics()
	if err != nil {
		t.Fatalf("listDocTopics() error = %v", err)
	}
	if len(topics) == 0 {
		t.Fatal("expected embedded docs topics, got none")
	}

	byID := make(map[string]docTopic, len(topics))
	for _, topic := range topics {
		byID[topic.ID] = topic
	}
	for _, expected := range []string{"getting-started", "declaring-records", "dispatch-rules", "serialization"} {
		if _, ok := byID[expected]; !ok {
			t.Fatalf("expected topic %q in %v", expected, topics)
		}
	}

	gs := byID["getting-started"]
	if gs.Section != "guide" {
		t.Fatalf("getting-started section = %q, want guide", gs.Section)
	}
	if gs.Title != "Getting Started" {
		t.Fatalf("getting-started title = %q, want Getting Started", gs.Title)
	}
}

func TestDocTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "heading", in: "# Dispatch Rules\n\nBody.\n", want: "Dispatch Rules"},
		{name: "heading after preamble", in: "intro line\n\n# Real Title\n", want: "Real Title"},
		{name: "no heading", in: "\n\nplain first line\nsecond\n", want: "plain first line"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := docTitle(tc.in); got != tc.want {
				t.Fatalf("docTitle(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFindDocTopic(t *testing.T) {
	t.Parallel()

	topics := []docTopic{
		{Section: "guide", ID: "getting-started", Path: "guide/getting-started.md"},
		{Section: "reference", ID: "serialization", Path: "reference/serialization.md"},
	}

	if got, ok := findDocTopic(topics, "serialization"); !ok || got.Section != "reference" {
		t.Fatalf("findDocTopic(serialization) = (%+v, %v), want reference topic", got, ok)
	}
	if got, ok := findDocTopic(topics, "guide/getting-started"); !ok || got.ID != "getting-started" {
		t.Fatalf("findDocTopic(guide/getting-started) = (%+v, %v), want guide topic", got, ok)
	}
	if got, ok := findDocTopic(topics, " Getting-Started "); !ok || got.ID != "getting-started" {
		t.Fatalf("findDocTopic with spaces and caps = (%+v, %v), want guide topic", got, ok)
	}
	if _, ok := findDocTopic(topics, "nope"); ok {
		t.Fatal("expected unknown topic to return ok=false")
	}
}

func TestListDocsTextOutput(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() {
		jsonOutput = prevJSON
	})
	jsonOutput = false

	topics, err := listDocTopics()
	if err != nil {
		t.Fatalf("listDocTopics() error = %v", err)
	}

	var buf bytes.Buffer
	if err := listDocs(&buf, topics); err != nil {
		t.Fatalf("listDocs() error = %v", err)
	}

	out := buf.String()
	for _, snippet := range []string{"guide", "reference", "getting-started", "dispatch-rules", "shogun docs <topic>"} {
		if !strings.Contains(out, snippet) {
			t.Fatalf("output missing %q\nfull output:\n%s", snippet, out)
		}
	}
	if !strings.Contains(out, "• ") {
		t.Fatalf("topics should render as a bulleted list, got:\n%s", out)
	}
}

func TestListDocsJSONOutput(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() {
		jsonOutput = prevJSON
	})
	jsonOutput = true

	topics, err := listDocTopics()
	if err != nil {
		t.Fatalf("listDocTopics() error = %v", err)
	}

	out := captureStdout(t, func() {
		if err := listDocs(nil, topics); err != nil {
			t.Fatalf("listDocs() error = %v", err)
		}
	})

	var resp struct {
		OK   bool       `json:"ok"`
		Data []docTopic `json:"data"`
		Meta *Meta      `json:"meta"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if !resp.OK {
		t.Fatalf("expected ok=true; out=%s", out)
	}
	if resp.Meta == nil || resp.Meta.Count != len(topics) {
		t.Fatalf("meta = %+v, want count %d", resp.Meta, len(topics))
	}
	if len(resp.Data) != len(topics) {
		t.Fatalf("data has %d topics, want %d", len(resp.Data), len(topics))
	}
}

func TestShowDocPlainWhenNotTerminal(t *testing.T) {
	prevJSON := jsonOutput
	prevTTY := docsStdoutIsTerminal
	t.Cleanup(func() {
		jsonOutput = prevJSON
		docsStdoutIsTerminal = prevTTY
	})
	jsonOutput = false
	docsStdoutIsTerminal = func() bool { return false }

	topics, err := listDocTopics()
	if err != nil {
		t.Fatalf("listDocTopics() error = %v", err)
	}

	var buf bytes.Buffer
	if err := showDoc(&buf, topics, "getting-started"); err != nil {
		t.Fatalf("showDoc() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# Getting Started") {
		t.Fatalf("expected raw markdown, got:\n%s", buf.String())
	}
}

func TestShowDocUnknownTopic(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() {
		jsonOutput = prevJSON
	})
	jsonOutput = false

	topics, err := listDocTopics()
	if err != nil {
		t.Fatalf("listDocTopics() error = %v", err)
	}

	var buf bytes.Buffer
	err = showDoc(&buf, topics, "nope")
	if err == nil {
		t.Fatal("expected error for unknown topic")
	}
	if !strings.Contains(err.Error(), `no docs topic "nope"`) {
		t.Fatalf("error = %v, want unknown topic message", err)
	}
}
