package editorconfig

import (
	"strings"
	"testing"
)

const sample = `# top-level config
root = true

[*]
charset = utf-8
end_of_line = lf
insert_final_newline = true

[*.py]
indent_style = space
indent_size = 4

[Makefile]
indent_style = tab

[{*.yml,*.yaml}]
indent_size = 2
`

func TestParse_Sample(t *testing.T) {
	f, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.IsRoot() {
		t.Error("expected root = true")
	}
	if got := len(f.RootDeclarations()); got != 1 {
		t.Errorf("expected 1 root declaration, got %d", got)
	}
	if len(f.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(f.Sections))
	}
	if f.Sections[0].Pattern != "*" {
		t.Errorf("expected first section '*', got %q", f.Sections[0].Pattern)
	}
	if v, ok := f.Sections[1].Lookup("indent_size"); !ok || v != "4" {
		t.Errorf("expected indent_size=4 in [*.py], got %q", v)
	}
}

func TestParse_ColonSeparatorAndComments(t *testing.T) {
	content := "; ini-style comment\nroot: true\n\n[*]\nindent_style: space\n"
	f, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsRoot() {
		t.Error("expected root = true with colon separator")
	}
	if v, _ := f.Sections[0].Lookup("indent_style"); v != "space" {
		t.Errorf("expected indent_style=space, got %q", v)
	}
}

func TestParse_KeysAreLowercased(t *testing.T) {
	f, err := Parse(strings.NewReader("[*]\nIndent_Style = tab\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.Sections[0].Lookup("indent_style"); !ok {
		t.Error("expected key to be lowercased")
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unterminated section", "[*.py\nindent_size = 4\n"},
		{"bare word", "[*]\nnonsense\n"},
		{"missing key", "= true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.content)); err == nil {
				t.Errorf("expected parse error for %q", tt.content)
			}
		})
	}
}

func TestValidateGlob(t *testing.T) {
	valid := []string{"*", "*.py", "**/*.js", "{*.yml,*.yaml}", "[Mm]akefile", "lib/**/*"}
	for _, p := range valid {
		if err := ValidateGlob(p); err != nil {
			t.Errorf("ValidateGlob(%q) = %v, want nil", p, err)
		}
	}

	invalid := []string{"", "*.{yml", "[abc", "foo]bar{", `bad\`}
	for _, p := range invalid {
		if err := ValidateGlob(p); err == nil {
			t.Errorf("ValidateGlob(%q) = nil, want error", p)
		}
	}
}

func TestSectionMatches(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*", "main.py", true},
		{"*.py", "src/deep/main.py", true}, // no slash: match basename
		{"*.py", "main.go", false},
		{"src/*.py", "src/main.py", true},
		{"src/*.py", "src/deep/main.py", false},
		{"**/*.py", "src/deep/main.py", true},
		{"{*.yml,*.yaml}", "ci.yaml", true},
		{"[Mm]akefile", "Makefile", true},
		{"/docs/*.md", "docs/index.md", true},
	}
	for _, tt := range tests {
		s := &Section{Pattern: tt.pattern}
		got, err := s.Matches(tt.path)
		if err != nil {
			t.Errorf("Matches(%q, %q) error: %v", tt.pattern, tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestSettingsFor(t *testing.T) {
	f, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	py := f.SettingsFor("tools/gen.py")
	if py["indent_style"] != "space" || py["indent_size"] != "4" {
		t.Errorf("unexpected python settings: %v", py)
	}
	if py["charset"] != "utf-8" {
		t.Errorf("expected [*] charset to apply, got %v", py)
	}

	mk := f.SettingsFor("Makefile")
	if mk["indent_style"] != "tab" {
		t.Errorf("expected tab indent for Makefile, got %v", mk)
	}

	yml := f.SettingsFor(".github/workflows/ci.yml")
	if yml["indent_size"] != "2" {
		t.Errorf("expected indent_size=2 for yml, got %v", yml)
	}
}

func TestSettingsFor_Unset(t *testing.T) {
	content := "[*]\nmax_line_length = 80\n\n[*.md]\nmax_line_length = unset\n"
	f, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.SettingsFor("README.md")["max_line_length"]; ok {
		t.Error("expected max_line_length to be unset for markdown")
	}
	if f.SettingsFor("main.go")["max_line_length"] != "80" {
		t.Error("expected max_line_length=80 elsewhere")
	}
}
