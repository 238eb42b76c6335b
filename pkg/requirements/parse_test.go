package requirements

import (
	"strings"
	"testing"
)

func TestParse_SimpleConstraint(t *testing.T) {
	req, _, perr := ParseLine("numpy<2.0.0", 1)
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}
	if req == nil {
		t.Fatal("expected a requirement")
	}

	if req.Name != "numpy" {
		t.Errorf("expected name 'numpy', got %q", req.Name)
	}
	if len(req.Constraints) != 1 {
		t.Fatalf("expected 1 constraint, got %d", len(req.Constraints))
	}
	if got := req.Constraints[0].String(); got != "<2.0.0" {
		t.Errorf("expected constraint '<2.0.0', got %q", got)
	}
}

func TestParse_ExtrasAndConstraint(t *testing.T) {
	req, _, perr := ParseLine("pandas[excel,html]>=2.2.0", 1)
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}

	if req.Name != "pandas" {
		t.Errorf("expected name 'pandas', got %q", req.Name)
	}
	if len(req.Extras) != 2 || req.Extras[0] != "excel" || req.Extras[1] != "html" {
		t.Errorf("expected extras [excel html], got %v", req.Extras)
	}
	if req.Specifier() != ">=2.2.0" {
		t.Errorf("expected specifier '>=2.2.0', got %q", req.Specifier())
	}
}

func TestParse_ManifestWithCommentsAndBlanks(t *testing.T) {
	content := `# scientific computing
numpy<2.0.0
scipy>=1.10  # solver

# pose estimation
mediapipe==0.10.14
`
	f, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", f.Errors)
	}
	if len(f.Requirements) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(f.Requirements))
	}

	if f.Requirements[1].Name != "scipy" {
		t.Errorf("expected 'scipy', got %q", f.Requirements[1].Name)
	}
	if f.Requirements[1].Pos.Line != 3 {
		t.Errorf("expected scipy on line 3, got %d", f.Requirements[1].Pos.Line)
	}
	if f.Requirements[2].Specifier() != "==0.10.14" {
		t.Errorf("expected '==0.10.14', got %q", f.Requirements[2].Specifier())
	}
}

func TestParse_LineContinuation(t *testing.T) {
	content := "torch>=2.0,\\\n<3.0\n"
	f, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(f.Requirements))
	}
	req := f.Requirements[0]
	if len(req.Constraints) != 2 {
		t.Fatalf("expected 2 constraints, got %d", len(req.Constraints))
	}
	if req.Pos.Line != 1 {
		t.Errorf("expected requirement anchored to line 1, got %d", req.Pos.Line)
	}
}

func TestParse_Options(t *testing.T) {
	content := `-r base.txt
--index-url https://pypi.example.com/simple
-e .
numpy
`
	f, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(f.Options))
	}
	if f.Options[0].Flag != "-r" || f.Options[0].Value != "base.txt" {
		t.Errorf("unexpected option: %+v", f.Options[0])
	}
	if f.Options[1].Flag != "--index-url" {
		t.Errorf("expected '--index-url', got %q", f.Options[1].Flag)
	}
	if len(f.Requirements) != 1 {
		t.Errorf("expected 1 requirement, got %d", len(f.Requirements))
	}
}

func TestParse_EnvironmentMarker(t *testing.T) {
	req, _, perr := ParseLine(`pywin32>=300; sys_platform == "win32"`, 1)
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}
	if req.Marker != `sys_platform == "win32"` {
		t.Errorf("unexpected marker %q", req.Marker)
	}
	if req.Specifier() != ">=300" {
		t.Errorf("unexpected specifier %q", req.Specifier())
	}
}

func TestParse_DirectURLReference(t *testing.T) {
	req, _, perr := ParseLine("chumpy @ git+https://github.com/mattloper/chumpy.git", 1)
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}
	if req.Name != "chumpy" {
		t.Errorf("expected 'chumpy', got %q", req.Name)
	}
	if req.URL != "git+https://github.com/mattloper/chumpy.git" {
		t.Errorf("unexpected URL %q", req.URL)
	}
}

func TestParse_InvalidLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing operator", "numpy 2.0"},
		{"empty clause", "numpy>=1.0,"},
		{"missing version", "numpy=="},
		{"unclosed extras", "pandas[excel"},
		{"bad name", "-numpy==1.0x=="},
		{"interior wildcard", "numpy==2.*.1"},
		{"leading separator", ".numpy==1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _, perr := ParseLine(tt.line, 1)
			if req != nil && perr == nil {
				t.Errorf("expected parse error for %q, got %+v", tt.line, req)
			}
		})
	}
}

func TestParse_ErrorsDoNotHideLaterLines(t *testing.T) {
	content := "numpy==\nscipy>=1.10\n"
	f, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Errors) != 1 {
		t.Fatalf("expected 1 parse error, got %d", len(f.Errors))
	}
	if f.Errors[0].Pos.Line != 1 {
		t.Errorf("expected error on line 1, got %d", f.Errors[0].Pos.Line)
	}
	if len(f.Requirements) != 1 || f.Requirements[0].Name != "scipy" {
		t.Errorf("expected scipy to survive, got %+v", f.Requirements)
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"numpy", "numpy"},
		{"Pandas", "pandas"},
		{"ruamel.yaml", "ruamel-yaml"},
		{"typing_extensions", "typing-extensions"},
		{"A--B__C..D", "a-b-c-d"},
	}
	for _, tt := range tests {
		if got := CanonicalName(tt.in); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPinned(t *testing.T) {
	pinned, _, _ := ParseLine("numpy==1.26.4", 1)
	if !pinned.IsPinned() {
		t.Error("expected ==1.26.4 to count as pinned")
	}

	ranged, _, _ := ParseLine("numpy>=1.26,<2", 1)
	if ranged.IsPinned() {
		t.Error("expected a range to not count as pinned")
	}

	wildcard, _, _ := ParseLine("numpy==1.26.*", 1)
	if wildcard.IsPinned() {
		t.Error("expected a wildcard pin to not count as pinned")
	}
}
