// Package engine assembles the schema, content, structure and security
// checks and the quality scorer into a single validation pass.
//
// An Engine is immutable once built and safe for concurrent use. It performs
// no I/O: every outcome about the submission is a CheckResult, and the only
// error it returns is for invalid configuration.
package engine

import (
	"fmt"

	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/domain/check"
	"github.com/skillvet/skillvet/internal/domain/document"
	"github.com/skillvet/skillvet/internal/domain/scoring"
)

type Engine struct {
	cfg   domain.EngineConfig
	rules []check.Rule
}

// New validates cfg and compiles the security rules.
func New(cfg domain.EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	rules, err := check.SecurityRules(cfg.SuspiciousHosts)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, rules: rules}, nil
}

// Default returns an engine built from domain.DefaultConfig.
func Default() *Engine {
	e, err := New(domain.DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default engine config: %v", err))
	}
	return e
}

// Config returns a copy of the configuration the engine was built with.
func (e *Engine) Config() domain.EngineConfig {
	cfg := e.cfg
	cfg.Categories = append([]string(nil), e.cfg.Categories...)
	cfg.SuspiciousHosts = append([]string(nil), e.cfg.SuspiciousHosts...)
	return cfg
}

// Rules returns the compiled security rule table.
func (e *Engine) Rules() []check.Rule {
	return append([]check.Rule(nil), e.rules...)
}

// ComputeQualityScore returns schema + instructions, clamped to 0-100.
func (e *Engine) ComputeQualityScore(in domain.ValidationInput) int {
	return scoring.Clamp(e.ComputeDetailedScore(in).Total)
}

// ComputeDetailedScore returns the sub-scores and one detail line per
// awarded bonus.
func (e *Engine) ComputeDetailedScore(in domain.ValidationInput) domain.QualityBreakdown {
	doc := document.Analyze(in.Instructions, e.cfg.MaxInstructionsLength)
	return scoring.Detailed(in, doc, e.cfg)
}

// RunSecurityChecks scans text with every security rule, in table order.
// Only the first MaxInstructionsLength bytes are scanned.
func (e *Engine) RunSecurityChecks(text string) []domain.CheckResult {
	window, _ := document.Window(text, e.cfg.MaxInstructionsLength)
	return check.RunRules(e.rules, window)
}

// ValidateSkill runs every check and the scorer over in. The quality score
// ignores security outcomes; they gate publication through Summary.Errors.
func (e *Engine) ValidateSkill(in domain.ValidationInput) domain.ValidationReport {
	doc := document.Analyze(in.Instructions, e.cfg.MaxInstructionsLength)

	checks := domain.Checks{
		Schema:    check.Schema(in, e.cfg),
		Content:   check.Content(in.Instructions, e.cfg),
		Structure: check.Structure(doc, e.cfg),
		Security:  check.RunRules(e.rules, doc.Text),
	}
	score := scoring.Clamp(scoring.Detailed(in, doc, e.cfg).Total)
	summary := domain.Summarize(checks.All())

	return domain.ValidationReport{
		Slug:         in.Slug,
		QualityScore: score,
		Checks:       checks,
		Summary:      summary,
		Publishable:  summary.Errors == 0 && score >= e.cfg.MinPublishScore,
	}
}
