package domain

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
)

const (
	// MaxSchemaScore and MaxInstructionsScore bound the two sub-scores.
	MaxSchemaScore       = 25
	MaxInstructionsScore = 75
)

// ScoreBuckets enumerates every score bucket, in the order details are reported.
var ScoreBuckets = []string{
	// schema
	"required_fields", "semver", "description", "category",
	// instructions
	"min_instructions", "long_instructions",
	"phases", "input_output", "examples",
	"error_handling", "constraints", "output_format",
}

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = []string{
	"development", "productivity", "data", "devops", "security",
	"writing", "research", "design", "testing", "documentation",
}

// DefaultSuspiciousHosts lists request-capture and tunnel hosts commonly
// used to exfiltrate data. Patterns are globs with '.' as separator.
var DefaultSuspiciousHosts = []string{
	"webhook.site", "*.webhook.site",
	"requestbin.com", "*.requestbin.com", "*.requestbin.net",
	"*.pipedream.net", "*.m.pipedream.net",
	"*.ngrok.io", "*.ngrok-free.app", "*.ngrok.app",
	"*.trycloudflare.com",
	"*.burpcollaborator.net", "*.oastify.com",
	"*.interact.sh", "*.oast.fun", "*.oast.me", "*.oast.pro",
	"transfer.sh", "pastebin.com", "hastebin.com",
	"*.beeceptor.com", "hookbin.com",
}

// ScoreWeights holds the point value of each score bucket.
type ScoreWeights struct {
	RequiredFields   int `yaml:"required_fields"   json:"required_fields"   validate:"gte=0"`
	Semver           int `yaml:"semver"            json:"semver"            validate:"gte=0"`
	Description      int `yaml:"description"       json:"description"       validate:"gte=0"`
	Category         int `yaml:"category"          json:"category"          validate:"gte=0"`
	MinInstructions  int `yaml:"min_instructions"  json:"min_instructions"  validate:"gte=0"`
	LongInstructions int `yaml:"long_instructions" json:"long_instructions" validate:"gte=0"`
	Phases           int `yaml:"phases"            json:"phases"            validate:"gte=0"`
	InputOutput      int `yaml:"input_output"      json:"input_output"      validate:"gte=0"`
	Examples         int `yaml:"examples"          json:"examples"          validate:"gte=0"`
	ErrorHandling    int `yaml:"error_handling"    json:"error_handling"    validate:"gte=0"`
	Constraints      int `yaml:"constraints"       json:"constraints"       validate:"gte=0"`
	OutputFormat     int `yaml:"output_format"     json:"output_format"     validate:"gte=0"`
}

func (w ScoreWeights) SchemaMax() int {
	return w.RequiredFields + w.Semver + w.Description + w.Category
}

func (w ScoreWeights) InstructionsMax() int {
	return w.MinInstructions + w.LongInstructions + w.Phases + w.InputOutput +
		w.Examples + w.ErrorHandling + w.Constraints + w.OutputFormat
}

// Points returns the weight of a bucket, or false for an unknown name.
func (w ScoreWeights) Points(bucket string) (int, bool) {
	p := w.field(bucket)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Set overrides the weight of a bucket.
func (w *ScoreWeights) Set(bucket string, points int) error {
	p := w.field(bucket)
	if p == nil {
		return fmt.Errorf("unknown score bucket %q", bucket)
	}
	*p = points
	return nil
}

func (w *ScoreWeights) field(bucket string) *int {
	switch bucket {
	case "required_fields":
		return &w.RequiredFields
	case "semver":
		return &w.Semver
	case "description":
		return &w.Description
	case "category":
		return &w.Category
	case "min_instructions":
		return &w.MinInstructions
	case "long_instructions":
		return &w.LongInstructions
	case "phases":
		return &w.Phases
	case "input_output":
		return &w.InputOutput
	case "examples":
		return &w.Examples
	case "error_handling":
		return &w.ErrorHandling
	case "constraints":
		return &w.Constraints
	case "output_format":
		return &w.OutputFormat
	default:
		return nil
	}
}

// EngineConfig carries every tunable the validation engine uses. Thresholds
// are owned by the surrounding product and injected, never hardcoded.
type EngineConfig struct {
	MinPublishScore           int          `yaml:"min_publish_score"           json:"min_publish_score"           validate:"gte=0,lte=100"`
	MinDescriptionLength      int          `yaml:"min_description_length"      json:"min_description_length"      validate:"gte=0"`
	MinInstructionsLength     int          `yaml:"min_instructions_length"     json:"min_instructions_length"     validate:"gte=0"`
	LongInstructionsLength    int          `yaml:"long_instructions_length"    json:"long_instructions_length"    validate:"gte=0"`
	TrivialInstructionsLength int          `yaml:"trivial_instructions_length" json:"trivial_instructions_length" validate:"gte=0"`
	MaxInstructionsLength     int          `yaml:"max_instructions_length"     json:"max_instructions_length"     validate:"gt=0"`
	Categories                []string     `yaml:"categories"                  json:"categories"                  validate:"min=1,dive,required"`
	SuspiciousHosts           []string     `yaml:"suspicious_hosts"            json:"suspicious_hosts"            validate:"dive,required"`
	Weights                   ScoreWeights `yaml:"weights"                     json:"weights"`
}

// DefaultConfig returns the stock thresholds and weights.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		MinPublishScore:           50,
		MinDescriptionLength:      30,
		MinInstructionsLength:     100,
		LongInstructionsLength:    500,
		TrivialInstructionsLength: 50,
		MaxInstructionsLength:     100_000,
		Categories:                slices.Clone(DefaultCategories),
		SuspiciousHosts:           slices.Clone(DefaultSuspiciousHosts),
		Weights: ScoreWeights{
			RequiredFields:   10,
			Semver:           5,
			Description:      5,
			Category:         5,
			MinInstructions:  10,
			LongInstructions: 5,
			Phases:           10,
			InputOutput:      10,
			Examples:         10,
			ErrorHandling:    10,
			Constraints:      10,
			OutputFormat:     10,
		},
	}
}

// IsKnownCategory reports whether slug is one of the configured categories.
func (c EngineConfig) IsKnownCategory(slug string) bool {
	return slug != "" && slices.Contains(c.Categories, slug)
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate reports every invalid value in the config at once.
func (c EngineConfig) Validate() error {
	var result *multierror.Error

	// 1. field ranges
	if err := structValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			result = multierror.Append(result, fieldError(fe))
		}
	}

	// 2. length thresholds must be ordered
	if c.LongInstructionsLength < c.MinInstructionsLength {
		result = multierror.Append(result, fmt.Errorf(
			"long_instructions_length (%d) must be >= min_instructions_length (%d)",
			c.LongInstructionsLength, c.MinInstructionsLength))
	}
	if c.MaxInstructionsLength > 0 && c.MaxInstructionsLength < c.LongInstructionsLength {
		result = multierror.Append(result, fmt.Errorf(
			"max_instructions_length (%d) must be >= long_instructions_length (%d)",
			c.MaxInstructionsLength, c.LongInstructionsLength))
	}

	// 3. sub-score caps are upper bounds; zero-weight buckets are allowed
	if m := c.Weights.SchemaMax(); m > MaxSchemaScore {
		result = multierror.Append(result, fmt.Errorf("schema weights sum to %d (max %d)", m, MaxSchemaScore))
	}
	if m := c.Weights.InstructionsMax(); m > MaxInstructionsScore {
		result = multierror.Append(result, fmt.Errorf("instruction weights sum to %d (max %d)", m, MaxInstructionsScore))
	}

	// 4. categories must be unique
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if seen[cat] {
			result = multierror.Append(result, fmt.Errorf("duplicate category %q", cat))
		}
		seen[cat] = true
	}

	// 5. host patterns must compile
	for _, h := range c.SuspiciousHosts {
		if _, err := glob.Compile(h, '.'); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid suspicious_hosts pattern %q: %w", h, err))
		}
	}

	return result.ErrorOrNil()
}

func fieldError(fe validator.FieldError) error {
	// Namespace is "EngineConfig.weights.semver"; drop the root.
	_, name, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "gte":
		return fmt.Errorf("%s must be >= %s (got %v)", name, fe.Param(), fe.Value())
	case "lte":
		return fmt.Errorf("%s must be <= %s (got %v)", name, fe.Param(), fe.Value())
	case "gt":
		return fmt.Errorf("%s must be > %s (got %v)", name, fe.Param(), fe.Value())
	case "min":
		return fmt.Errorf("%s must have at least %s entries", name, fe.Param())
	case "required":
		return fmt.Errorf("%s must not be empty", name)
	default:
		return fmt.Errorf("%s failed %q validation", name, fe.Tag())
	}
}

// ConfigOverrides is the on-disk shape of .skillvet.yaml. Pointer fields
// distinguish "not specified" from zero values.
type ConfigOverrides struct {
	MinPublishScore           *int           `yaml:"min_publish_score,omitempty"`
	MinDescriptionLength      *int           `yaml:"min_description_length,omitempty"`
	MinInstructionsLength     *int           `yaml:"min_instructions_length,omitempty"`
	LongInstructionsLength    *int           `yaml:"long_instructions_length,omitempty"`
	TrivialInstructionsLength *int           `yaml:"trivial_instructions_length,omitempty"`
	MaxInstructionsLength     *int           `yaml:"max_instructions_length,omitempty"`
	Categories                []string       `yaml:"categories,omitempty"`
	SuspiciousHosts           []string       `yaml:"suspicious_hosts,omitempty"`
	ExtraSuspiciousHosts      []string       `yaml:"extra_suspicious_hosts,omitempty"`
	Weights                   map[string]int `yaml:"weights,omitempty"`
}

// Apply overlays the overrides on base. Explicit values always win;
// extra_suspicious_hosts is appended to whatever host list results.
func (o ConfigOverrides) Apply(base EngineConfig) (EngineConfig, error) {
	cfg := base
	cfg.Categories = slices.Clone(base.Categories)
	cfg.SuspiciousHosts = slices.Clone(base.SuspiciousHosts)

	setInt(&cfg.MinPublishScore, o.MinPublishScore)
	setInt(&cfg.MinDescriptionLength, o.MinDescriptionLength)
	setInt(&cfg.MinInstructionsLength, o.MinInstructionsLength)
	setInt(&cfg.LongInstructionsLength, o.LongInstructionsLength)
	setInt(&cfg.TrivialInstructionsLength, o.TrivialInstructionsLength)
	setInt(&cfg.MaxInstructionsLength, o.MaxInstructionsLength)

	if len(o.Categories) > 0 {
		cfg.Categories = slices.Clone(o.Categories)
	}
	if len(o.SuspiciousHosts) > 0 {
		cfg.SuspiciousHosts = slices.Clone(o.SuspiciousHosts)
	}
	cfg.SuspiciousHosts = append(cfg.SuspiciousHosts, o.ExtraSuspiciousHosts...)

	// Sorted so the first unknown name is reported deterministically.
	names := make([]string, 0, len(o.Weights))
	for name := range o.Weights {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := cfg.Weights.Set(name, o.Weights[name]); err != nil {
			return EngineConfig{}, fmt.Errorf("weights: %w", err)
		}
	}

	return cfg, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
