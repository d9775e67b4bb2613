package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillvet/skillvet/internal/adapters/outbound/tui"
	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/domain/check"
	"github.com/skillvet/skillvet/internal/domain/engine"
)

func TestRenderScan_Findings(t *testing.T) {
	checks := []domain.CheckResult{
		{ID: "security.shellInjection", Severity: domain.SeverityError, Message: "pipes a download into a shell"},
		{ID: "security.cryptoMining", Passed: true, Severity: domain.SeverityError, Message: "no mining references"},
		{ID: "security.disableSecurity", Severity: domain.SeverityWarning, Message: "weakens system security"},
	}
	output := tui.RenderScan("notes/install.md", checks)
	assert.Contains(t, output, "Security Scan")
	assert.Contains(t, output, "security.shellInjection")
	assert.Contains(t, output, "weakens system security")
	assert.NotContains(t, output, "security.cryptoMining")
	assert.Contains(t, output, "1 errors")
	assert.Contains(t, output, "1 warnings")
}

func TestRenderScan_Clean(t *testing.T) {
	checks := []domain.CheckResult{{ID: "security.reverseShell", Passed: true, Severity: domain.SeverityError}}
	output := tui.RenderScan("a.md", checks)
	assert.Contains(t, output, "No findings (1 rules).")
}

func TestRenderRules(t *testing.T) {
	output := tui.RenderRules(engine.Default().Rules())
	for _, id := range check.RuleIDs() {
		assert.Contains(t, output, id)
	}
	assert.Contains(t, output, "warn")
	assert.Contains(t, output, "error")
}
