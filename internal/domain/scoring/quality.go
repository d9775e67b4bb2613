package scoring

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/domain/check"
	"github.com/skillvet/skillvet/internal/domain/document"
)

var bucketLabels = map[string]string{
	"required_fields":   "required fields present",
	"semver":            "valid semantic version",
	"description":       "descriptive summary",
	"category":          "known category",
	"min_instructions":  "instructions meet minimum length",
	"long_instructions": "detailed instructions",
	"phases":            "structured phases or steps",
	"input_output":      "explicit inputs and outputs",
	"examples":          "examples or code blocks",
	"error_handling":    "error handling guidance",
	"constraints":       "explicit constraints",
	"output_format":     "output format specified",
}

// Detailed scores a submission. Each bucket is awarded in full or not at
// all; weights come from cfg.Weights.
//
// Schema buckets (max 25 with default weights):
//   - required_fields (10) name, description and instructions all present
//   - semver          (5)  version is MAJOR.MINOR.PATCH
//   - description     (5)  description reaches MinDescriptionLength
//   - category        (5)  category is configured
//
// Instructions buckets (max 75 with default weights):
//   - min_instructions  (10) length reaches MinInstructionsLength
//   - long_instructions (5)  length reaches LongInstructionsLength
//   - phases, input_output, examples, error_handling, constraints,
//     output_format (10 each) gated by the document signals
func Detailed(in domain.ValidationInput, doc document.Document, cfg domain.EngineConfig) domain.QualityBreakdown {
	n := utf8.RuneCountInString(strings.TrimSpace(in.Instructions))
	sig := doc.Signals

	awarded := map[string]bool{
		"required_fields": present(in.Name) && present(in.Description) && present(in.Instructions),
		"semver":          check.IsSemver(in.Version),
		"description":     utf8.RuneCountInString(strings.TrimSpace(in.Description)) >= cfg.MinDescriptionLength,
		"category":        cfg.IsKnownCategory(in.CategorySlug),

		"min_instructions":  n > 0 && n >= cfg.MinInstructionsLength,
		"long_instructions": n > 0 && n >= cfg.LongInstructionsLength,
		"phases":            sig.HasPhases,
		"input_output":      sig.HasInputOutput,
		"examples":          sig.HasExamples,
		"error_handling":    sig.HasErrorHandling,
		"constraints":       sig.HasConstraints,
		"output_format":     sig.HasOutputFormat,
	}

	var b domain.QualityBreakdown
	for i, bucket := range domain.ScoreBuckets {
		if !awarded[bucket] {
			continue
		}
		pts, _ := cfg.Weights.Points(bucket)
		if pts == 0 {
			continue
		}
		if i < schemaBuckets {
			b.Schema += pts
		} else {
			b.Instructions += pts
		}
		b.Details = append(b.Details, fmt.Sprintf("+%d %s", pts, bucketLabels[bucket]))
	}
	b.Total = b.Schema + b.Instructions
	return b
}

// schemaBuckets is the number of leading ScoreBuckets that count toward
// the schema sub-score.
const schemaBuckets = 4

// Clamp bounds a raw total to the 0-100 score range.
func Clamp(total int) int {
	return min(max(total, 0), 100)
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
