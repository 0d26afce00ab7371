package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunDemoJSON(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"--target", "example.org", "-w", "8", "--level", "debug"}

	if err := runDemo(&buf, args, "json"); err != nil {
		t.Fatalf("runDemo: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if m["target"] != "example.org" {
		t.Fatalf("target = %v, want example.org", m["target"])
	}
	if m["workers"] != float64(8) {
		t.Fatalf("workers = %v, want 8", m["workers"])
	}
	if m["level"] != "debug" {
		t.Fatalf("level = %v, want debug", m["level"])
	}
	if m["verbose"] != false {
		t.Fatalf("verbose = %v, want false", m["verbose"])
	}
	limits, ok := m["limits"].(map[string]any)
	if !ok {
		t.Fatalf("limits = %T, want nested map", m["limits"])
	}
	if limits["depth"] != float64(3) {
		t.Fatalf("limits.depth = %v, want default 3", limits["depth"])
	}
	if limits["timeout"] != "30s" {
		t.Fatalf("limits.timeout = %v, want 30s", limits["timeout"])
	}
}

func TestRunDemoAliasFlag(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"--target", "example.org", "--jobs", "12"}

	if err := runDemo(&buf, args, "json"); err != nil {
		t.Fatalf("runDemo: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if m["workers"] != float64(12) {
		t.Fatalf("workers = %v, want 12 via --jobs alias", m["workers"])
	}
}

func TestRunDemoTOML(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"--target", "example.org", "--limits-depth", "5"}

	if err := runDemo(&buf, args, "toml"); err != nil {
		t.Fatalf("runDemo: %v", err)
	}

	out := buf.String()
	for _, snippet := range []string{`target = "example.org"`, "[limits]", "depth = 5", `timeout = "30s"`} {
		if !strings.Contains(out, snippet) {
			t.Fatalf("TOML output missing %q\nfull output:\n%s", snippet, out)
		}
	}
}

func TestRunDemoYAML(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"--target", "example.org"}

	if err := runDemo(&buf, args, "yaml"); err != nil {
		t.Fatalf("runDemo: %v", err)
	}

	out := buf.String()
	for _, snippet := range []string{"target: example.org", "workers: 4", "timeout: 30s"} {
		if !strings.Contains(out, snippet) {
			t.Fatalf("YAML output missing %q\nfull output:\n%s", snippet, out)
		}
	}
}

func TestRunDemoUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"--target", "example.org"}

	err := runDemo(&buf, args, "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), `unknown format "xml"`) {
		t.Fatalf("error = %v, want unknown format message", err)
	}
}

func TestRunDemoMissingRequired(t *testing.T) {
	var buf bytes.Buffer

	err := runDemo(&buf, []string{}, "json")
	if err == nil {
		t.Fatal("expected error for missing required flag")
	}
	if !strings.Contains(err.Error(), `required flag(s) "target" not set`) {
		t.Fatalf("error = %v, want missing required message", err)
	}
}

func TestRunDemoMissingRequiredJSONEnvelope(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() {
		jsonOutput = prevJSON
	})
	jsonOutput = true

	var buf bytes.Buffer
	out := captureStdout(t, func() {
		if err := runDemo(&buf, []string{}, "json"); err != nil {
			t.Fatalf("runDemo in JSON mode should swallow the error, got %v", err)
		}
	})

	var resp Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON envelope, got parse error: %v; out=%s", err, out)
	}
	if resp.OK {
		t.Fatalf("expected ok=false; out=%s", out)
	}
	if resp.Error == nil || resp.Error.Code != ErrParseFailed {
		t.Fatalf("error = %+v, want code %s", resp.Error, ErrParseFailed)
	}
	if !strings.Contains(resp.Error.Message, `required flag(s) "target" not set`) {
		t.Fatalf("message = %q, want missing required message", resp.Error.Message)
	}
}

func TestRunDemoHelpIsNotAnError(t *testing.T) {
	var buf bytes.Buffer
	if err := runDemo(&buf, []string{"--help"}, "json"); err != nil {
		t.Fatalf("help request should not be an error, got %v", err)
	}
}

func TestEncodeMapNormalizesFormatName(t *testing.T) {
	m := map[string]any{"key": "value"}

	out, err := encodeMap(m, "  JSON ")
	if err != nil {
		t.Fatalf("encodeMap: %v", err)
	}
	if !strings.Contains(out, `"key": "value"`) {
		t.Fatalf("output = %q, want JSON object", out)
	}
}
