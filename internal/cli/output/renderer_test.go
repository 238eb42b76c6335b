package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestOutputMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"text", ModeText},
		{"markdown", ModeMarkdown},
		{"json", ModeJSON},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"bogus", ModeAuto},
	}
	for _, tt := range tests {
		if got := OutputMode(tt.in); got != tt.want {
			t.Errorf("OutputMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEffectiveMode(t *testing.T) {
	var out, errOut bytes.Buffer

	r := NewRendererWithTTY(&out, &errOut, ModeAuto, true)
	if r.EffectiveMode() != ModeText {
		t.Errorf("auto on TTY should resolve to text, got %q", r.EffectiveMode())
	}

	r = NewRendererWithTTY(&out, &errOut, ModeAuto, false)
	if r.EffectiveMode() != ModeMarkdown {
		t.Errorf("auto when piped should resolve to markdown, got %q", r.EffectiveMode())
	}

	r = NewRendererWithTTY(&out, &errOut, ModeJSON, true)
	if r.EffectiveMode() != ModeJSON {
		t.Errorf("explicit mode should win, got %q", r.EffectiveMode())
	}
}

func TestRendererPlainWhenPiped(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, ModeText, false)

	r.Println(r.Styles().Bold.Render("hello"))
	if got := out.String(); got != "hello\n" {
		t.Errorf("expected unstyled output, got %q", got)
	}
}

func TestRendererJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, ModeJSON, false)

	payload := LintOutput{Summary: LintSummary{FilesAnalyzed: 2, TotalIssues: 3}}
	if err := r.JSON(payload); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded LintOutput
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if decoded.Summary.FilesAnalyzed != 2 || decoded.Summary.TotalIssues != 3 {
		t.Errorf("round trip mismatch: %+v", decoded.Summary)
	}
}

func TestSuccessMarkdown(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, ModeMarkdown, false)

	r.Success("done")
	if got := out.String(); got != "**done**\n" {
		t.Errorf("expected markdown bold, got %q", got)
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatHeader(2, "Rules"); got != "## Rules" {
		t.Errorf("FormatHeader = %q", got)
	}
	if got := FormatHeader(9, "Deep"); got != "###### Deep" {
		t.Errorf("FormatHeader clamps at 6, got %q", got)
	}
	if got := FormatKeyValue("path", "requirements.txt"); got != "path: requirements.txt" {
		t.Errorf("FormatKeyValue = %q", got)
	}
	block := FormatCodeBlock("ini", "root = true\n")
	if !strings.HasPrefix(block, "```ini\n") || !strings.HasSuffix(block, "\n```") {
		t.Errorf("FormatCodeBlock = %q", block)
	}
}
