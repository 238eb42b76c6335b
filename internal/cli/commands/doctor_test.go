package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqlint/reqlint/pkg/lint"
)

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name             string
		checks           []HealthCheck
		requirementCount int
		minScore         int
		maxScore         int
	}{
		{
			name:             "no checks returns 100",
			checks:           nil,
			requirementCount: 10,
			minScore:         100,
			maxScore:         100,
		},
		{
			name: "all passing returns 100",
			checks: []HealthCheck{
				{RuleID: "RQ01", Status: "pass", IssueCount: 0},
				{RuleID: "EC01", Status: "pass", IssueCount: 0},
			},
			requirementCount: 10,
			minScore:         100,
			maxScore:         100,
		},
		{
			name: "warnings reduce score",
			checks: []HealthCheck{
				{RuleID: "RQ04", Status: "warn", IssueCount: 2},
			},
			requirementCount: 10,
			minScore:         80,
			maxScore:         99,
		},
		{
			name: "errors reduce score more",
			checks: []HealthCheck{
				{RuleID: "RQ03", Status: "error", IssueCount: 2},
			},
			requirementCount: 10,
			minScore:         70,
			maxScore:         95,
		},
		{
			name: "more requirements means less impact per issue",
			checks: []HealthCheck{
				{RuleID: "RQ04", Status: "warn", IssueCount: 5},
			},
			requirementCount: 200,
			minScore:         90,
			maxScore:         99,
		},
		{
			name: "many issues can reduce to 0",
			checks: []HealthCheck{
				{RuleID: "RQ01", Status: "error", IssueCount: 20},
				{RuleID: "RQ03", Status: "error", IssueCount: 20},
			},
			requirementCount: 5,
			minScore:         0,
			maxScore:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := calculateHealthScore(tt.checks, tt.requirementCount)
			assert.GreaterOrEqual(t, score, tt.minScore)
			assert.LessOrEqual(t, score, tt.maxScore)
		})
	}
}

func TestGetRecommendation(t *testing.T) {
	covered := []string{
		"RQ01", "RQ02", "RQ03", "RQ04", "RQ05", "RQ06", "RQ07", "RQ08",
		"EC01", "EC02", "EC03", "EC04", "EC05", "EC06", "EC07",
		"syntax",
	}
	for _, id := range covered {
		assert.NotEmpty(t, getRecommendation(id), "expected recommendation for %s", id)
	}
	assert.Empty(t, getRecommendation("UNKNOWN"))
}

func TestGenerateRecommendations(t *testing.T) {
	checks := []HealthCheck{
		{RuleID: "RQ03", Status: "error", IssueCount: 1},
		{RuleID: "RQ04", Status: "warn", IssueCount: 2},
		{RuleID: "EC01", Status: "pass", IssueCount: 0},
	}

	recommendations := generateRecommendations(checks)

	require.Len(t, recommendations, 2)
	assert.Contains(t, recommendations[0], "conflicting duplicate")
	assert.Contains(t, recommendations[1], "Pin dependencies")
}

func TestGenerateRecommendationsLimitTo5(t *testing.T) {
	ids := []string{"RQ01", "RQ02", "RQ03", "RQ04", "RQ05", "RQ06", "RQ07", "RQ08"}
	checks := make([]HealthCheck, len(ids))
	for i, id := range ids {
		checks[i] = HealthCheck{RuleID: id, Status: "warn", IssueCount: 1}
	}

	recommendations := generateRecommendations(checks)
	assert.LessOrEqual(t, len(recommendations), 5)
}

func TestBuildDoctorOutput(t *testing.T) {
	summary := ProjectSummary{Manifests: 1, Requirements: 2}
	diags := []lint.Diagnostic{
		{RuleID: "RQ03", Severity: lint.SeverityError, Message: "requirements.txt: conflicting constraints for numpy"},
		{RuleID: "RQ04", Severity: lint.SeverityHint, Message: "requirements.txt: pandas is not pinned"},
	}

	out := buildDoctorOutput(summary, diags)

	assert.Equal(t, 2, out.IssueCount)
	assert.Less(t, out.Score, 100)
	assert.NotEmpty(t, out.Recommendations)

	// Every registered rule shows up as a health check.
	assert.Len(t, out.HealthChecks, len(lint.All()))

	byID := make(map[string]HealthCheck)
	for _, check := range out.HealthChecks {
		byID[check.RuleID] = check
	}
	assert.Equal(t, "error", byID["RQ03"].Status)
	assert.Equal(t, 1, byID["RQ03"].IssueCount)
	assert.Equal(t, "warn", byID["RQ04"].Status)
	assert.Equal(t, "pass", byID["RQ01"].Status)
}

func TestBuildDoctorOutputHonorsSeverityOverrides(t *testing.T) {
	// RQ04 defaults to a hint, but the analyzer stamps diagnostics with the
	// configured severity. A promoted rule must surface as an error check.
	diags := []lint.Diagnostic{
		{RuleID: "RQ04", Severity: lint.SeverityError, Message: "requirements.txt: pandas is not pinned"},
		{RuleID: "RQ03", Severity: lint.SeverityWarning, Message: "requirements.txt: conflicting constraints for numpy"},
	}

	out := buildDoctorOutput(ProjectSummary{Requirements: 2}, diags)

	byID := make(map[string]HealthCheck)
	for _, check := range out.HealthChecks {
		byID[check.RuleID] = check
	}
	assert.Equal(t, "error", byID["RQ04"].Status)
	assert.Equal(t, "warn", byID["RQ03"].Status)
}

func TestBuildDoctorOutputSyntaxCheck(t *testing.T) {
	diags := []lint.Diagnostic{
		{RuleID: "syntax", Severity: lint.SeverityError, Message: ".editorconfig: unterminated section header"},
	}

	out := buildDoctorOutput(ProjectSummary{}, diags)

	var found bool
	for _, check := range out.HealthChecks {
		if check.RuleID == "syntax" {
			found = true
			assert.Equal(t, "error", check.Status)
			assert.Equal(t, 1, check.IssueCount)
		}
	}
	assert.True(t, found, "syntax failures should appear as a health check")
}

func TestBuildProjectSummary(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	ecFile := filepath.Join(dir, ".editorconfig")
	require.NoError(t, os.WriteFile(manifest, []byte("numpy==1.26.4\npandas>=2.2.0\nnot a requirement!!\n"), 0o644))
	require.NoError(t, os.WriteFile(ecFile, []byte("root = true\n\n[*]\nindent_style = space\n\n[*.py]\nindent_size = 4\n"), 0o644))

	summary, err := buildProjectSummary([]Target{
		{Path: manifest, Kind: lint.KindRequirements},
		{Path: ecFile, Kind: lint.KindEditorConfig},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Manifests)
	assert.Equal(t, 2, summary.Requirements)
	assert.Equal(t, 1, summary.Pinned)
	assert.Equal(t, 1, summary.ParseErrors)
	assert.True(t, summary.EditorConfigPresent)
	assert.Equal(t, 2, summary.EditorConfigSections)
}
