package domain

import (
	"fmt"
	"strings"
)

// ValidationInput is a candidate skill submission: metadata plus the
// instructions body that will be injected into an agent's context.
type ValidationInput struct {
	Slug         string   `json:"slug"          yaml:"slug"`
	Name         string   `json:"name"          yaml:"name"`
	Description  string   `json:"description"   yaml:"description"`
	CategorySlug string   `json:"category_slug" yaml:"category"`
	Version      string   `json:"version"       yaml:"version"`
	Platforms    []string `json:"platforms"     yaml:"platforms"`
	Instructions string   `json:"instructions"  yaml:"-"`
}

// Severity classifies a failed check. Errors block publication, warnings do not.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity is the inverse of String.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (valid: error, warning)", s)
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityError, SeverityWarning:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("cannot marshal %s", s)
	}
}

func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// CheckResult is the outcome of a single rule. ID is stable across runs and
// namespaced by category (schema.*, content.*, structure.*, security.*).
type CheckResult struct {
	ID       string   `json:"id"`
	Passed   bool     `json:"passed"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Blocking reports whether the result prevents publication.
func (c CheckResult) Blocking() bool {
	return !c.Passed && c.Severity == SeverityError
}

// QualityBreakdown splits the quality score into its schema and instructions
// parts. Total is always Schema + Instructions.
type QualityBreakdown struct {
	Schema       int      `json:"schema"`
	Instructions int      `json:"instructions"`
	Total        int      `json:"total"`
	Details      []string `json:"details"`
}

// Checks groups check results by category.
type Checks struct {
	Schema    []CheckResult `json:"schema"`
	Content   []CheckResult `json:"content"`
	Structure []CheckResult `json:"structure"`
	Security  []CheckResult `json:"security"`
}

// All returns every check in category order.
func (c Checks) All() []CheckResult {
	all := make([]CheckResult, 0, len(c.Schema)+len(c.Content)+len(c.Structure)+len(c.Security))
	all = append(all, c.Schema...)
	all = append(all, c.Content...)
	all = append(all, c.Structure...)
	all = append(all, c.Security...)
	return all
}

// Summary counts checks across all categories.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Summarize counts passed checks and failed checks per severity.
func Summarize(results []CheckResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
			continue
		}
		switch r.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		}
	}
	return s
}

// ValidationReport is the full outcome of validating one submission.
type ValidationReport struct {
	Slug         string  `json:"slug"`
	QualityScore int     `json:"quality_score"`
	Checks       Checks  `json:"checks"`
	Summary      Summary `json:"summary"`
	Publishable  bool    `json:"publishable"`
}

func (r ValidationReport) Grade() string { return GradeFor(r.QualityScore) }

// Check looks up a result by id.
func (r ValidationReport) Check(id string) (CheckResult, bool) {
	for _, c := range r.Checks.All() {
		if c.ID == id {
			return c, true
		}
	}
	return CheckResult{}, false
}

// FailedErrors returns the failed error-severity checks in category order.
func (r ValidationReport) FailedErrors() []CheckResult {
	var out []CheckResult
	for _, c := range r.Checks.All() {
		if c.Blocking() {
			out = append(out, c)
		}
	}
	return out
}

// BlockingMessage joins the messages of failed error-severity checks, the
// text a publish workflow surfaces to the submitter.
func (r ValidationReport) BlockingMessage() string {
	failed := r.FailedErrors()
	msgs := make([]string, 0, len(failed))
	for _, c := range failed {
		msgs = append(msgs, c.Message)
	}
	return strings.Join(msgs, "; ")
}

func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func BadgeColor(score int) string {
	switch {
	case score >= 90:
		return "brightgreen"
	case score >= 80:
		return "green"
	case score >= 70:
		return "yellow"
	case score >= 60:
		return "orange"
	case score >= 50:
		return "red"
	default:
		return "critical"
	}
}

// ReportEntry is one line of validation history.
type ReportEntry struct {
	Timestamp    string `json:"timestamp"`
	CommitHash   string `json:"commit_hash,omitempty"`
	Slug         string `json:"slug"`
	QualityScore int    `json:"quality_score"`
	Grade        string `json:"grade"`
	Publishable  bool   `json:"publishable"`
	Errors       int    `json:"errors"`
	Warnings     int    `json:"warnings"`
}

// NewReportEntry builds a history entry from a report.
func NewReportEntry(r ValidationReport, timestamp, commit string) ReportEntry {
	return ReportEntry{
		Timestamp:    timestamp,
		CommitHash:   commit,
		Slug:         r.Slug,
		QualityScore: r.QualityScore,
		Grade:        r.Grade(),
		Publishable:  r.Publishable,
		Errors:       r.Summary.Errors,
		Warnings:     r.Summary.Warnings,
	}
}
