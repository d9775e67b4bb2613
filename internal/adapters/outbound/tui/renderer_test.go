package tui_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillvet/skillvet/internal/adapters/outbound/tui"
	"github.com/skillvet/skillvet/internal/domain"
)

func sampleReport() domain.ValidationReport {
	checks := domain.Checks{
		Schema: []domain.CheckResult{
			{ID: "schema.name", Passed: true, Severity: domain.SeverityError, Message: "name is present"},
			{ID: "schema.version", Severity: domain.SeverityWarning, Message: "version is not valid semver"},
		},
		Structure: []domain.CheckResult{
			{ID: "structure.no_todos", Severity: domain.SeverityError, Message: "instructions contain TODO or FIXME markers"},
		},
		Security: []domain.CheckResult{
			{ID: "security.shellInjection", Passed: true, Severity: domain.SeverityError, Message: "no shell injection patterns"},
		},
	}
	return domain.ValidationReport{
		Slug:         "release-notes",
		QualityScore: 67,
		Checks:       checks,
		Summary:      domain.Summarize(checks.All()),
	}
}

func TestRenderReport_Header(t *testing.T) {
	output := tui.RenderReport("skills/release-notes/SKILL.md", sampleReport())
	assert.Contains(t, output, "release-notes")
	assert.Contains(t, output, "67 / 100")
	assert.Contains(t, output, "C")
}

func TestRenderReport_GroupsChecks(t *testing.T) {
	output := tui.RenderReport("SKILL.md", sampleReport())
	schema := strings.Index(output, "Schema")
	structure := strings.Index(output, "Structure")
	security := strings.Index(output, "Security")
	assert.True(t, schema >= 0 && schema < structure && structure < security)
	assert.NotContains(t, output, "Content", "empty categories are omitted")
}

func TestRenderReport_FailedChecksAreTagged(t *testing.T) {
	output := tui.RenderReport("SKILL.md", sampleReport())
	assert.Contains(t, output, "error")
	assert.Contains(t, output, "warn")
	assert.Contains(t, output, "version is not valid semver")
	assert.Contains(t, output, "1 errors")
	assert.Contains(t, output, "1 warnings")
	assert.Contains(t, output, "2/4 passed")
}

func TestRenderReport_Verdict(t *testing.T) {
	r := sampleReport()
	output := tui.RenderReport("SKILL.md", r)
	assert.Contains(t, output, "not publishable")
	assert.Contains(t, output, "instructions contain TODO or FIXME markers")

	r.Checks.Structure[0].Passed = true
	r.Summary = domain.Summarize(r.Checks.All())
	r.Publishable = true
	output = tui.RenderReport("SKILL.md", r)
	assert.Contains(t, output, "✓ publishable")
}

func TestRenderReport_BelowThreshold(t *testing.T) {
	r := domain.ValidationReport{Slug: "x", QualityScore: 10}
	output := tui.RenderReport("SKILL.md", r)
	assert.Contains(t, output, "below the publish threshold")
}

func TestRenderBreakdown(t *testing.T) {
	bd := domain.QualityBreakdown{
		Schema:       15,
		Instructions: 20,
		Total:        35,
		Details:      []string{"+10 required fields present", "+5 valid semantic version", "+10 examples or code blocks", "+10 explicit constraints"},
	}
	output := tui.RenderBreakdown("notes", bd)
	assert.Contains(t, output, "35 / 100")
	assert.Contains(t, output, "/ 25")
	assert.Contains(t, output, "/ 75")
	assert.Contains(t, output, "+10 explicit constraints")
	assert.Contains(t, output, "█")
}

func TestRenderHistory(t *testing.T) {
	entries := []domain.ReportEntry{
		{Timestamp: "2026-03-01T12:00:00Z", CommitHash: "abcdef123456", Slug: "notes", QualityScore: 40, Grade: "F"},
		{Timestamp: "2026-03-02T12:00:00Z", Slug: "other", QualityScore: 90, Grade: "A+"},
		{Timestamp: "2026-03-03T12:00:00Z", Slug: "notes", QualityScore: 55, Grade: "D"},
	}
	output := tui.RenderHistory(entries)
	assert.Contains(t, output, "Validation History")
	assert.Contains(t, output, "2026-03-01")
	assert.Contains(t, output, "abcdef1")
	assert.NotContains(t, output, "abcdef12")
	assert.Contains(t, output, "↑15", "delta is per slug")
	assert.NotContains(t, output, "↓")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No validation history found.")
}
