// Package check holds the rule tables behind the schema, content, structure
// and security categories of a validation report. Every rule is independent
// and yields exactly one CheckResult.
package check

import (
	"regexp"

	"github.com/skillvet/skillvet/internal/domain"
)

// Rule is a named text detector. Match reports whether the offending
// pattern is present; a match fails the check.
type Rule struct {
	ID       string
	Severity domain.Severity
	// Message explains a failure; Pass is reported when nothing matched.
	Message string
	Pass    string
	Match   func(text string) bool
}

// Run applies the rule to text.
func (r Rule) Run(text string) domain.CheckResult {
	if r.Match(text) {
		return domain.CheckResult{ID: r.ID, Severity: r.Severity, Message: r.Message}
	}
	return domain.CheckResult{ID: r.ID, Passed: true, Severity: r.Severity, Message: r.Pass}
}

// RunRules applies every rule in order.
func RunRules(rules []Rule, text string) []domain.CheckResult {
	results := make([]domain.CheckResult, 0, len(rules))
	for _, r := range rules {
		results = append(results, r.Run(text))
	}
	return results
}

// anyPattern matches when at least one expression matches.
func anyPattern(exprs ...string) func(string) bool {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return func(text string) bool {
		for _, re := range res {
			if re.MatchString(text) {
				return true
			}
		}
		return false
	}
}

func anyOf(matchers ...func(string) bool) func(string) bool {
	return func(text string) bool {
		for _, m := range matchers {
			if m(text) {
				return true
			}
		}
		return false
	}
}

// result builds a CheckResult for checks that are not pattern rules.
func result(id string, sev domain.Severity, passed bool, msg string) domain.CheckResult {
	return domain.CheckResult{ID: id, Passed: passed, Severity: sev, Message: msg}
}
