package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillvet/skillvet/internal/domain"
)

func intp(v int) *int { return &v }

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.MaxSchemaScore, cfg.Weights.SchemaMax())
	assert.Equal(t, domain.MaxInstructionsScore, cfg.Weights.InstructionsMax())
}

func TestDefaultConfig_ReturnsFreshSlices(t *testing.T) {
	a := domain.DefaultConfig()
	a.Categories[0] = "mutated"
	b := domain.DefaultConfig()
	assert.Equal(t, "development", b.Categories[0])
}

func TestIsKnownCategory(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.True(t, cfg.IsKnownCategory("devops"))
	assert.False(t, cfg.IsKnownCategory("DevOps"))
	assert.False(t, cfg.IsKnownCategory(""))
}

func TestScoreWeights_PointsAndSet(t *testing.T) {
	w := domain.DefaultConfig().Weights
	for _, bucket := range domain.ScoreBuckets {
		_, ok := w.Points(bucket)
		assert.True(t, ok, bucket)
	}
	_, ok := w.Points("nope")
	assert.False(t, ok)

	require.NoError(t, w.Set("examples", 3))
	p, _ := w.Points("examples")
	assert.Equal(t, 3, p)
	assert.Error(t, w.Set("nope", 1))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.MinPublishScore = 150
	cfg.LongInstructionsLength = 10
	cfg.MaxInstructionsLength = 0
	cfg.Categories = []string{"data", "data"}
	cfg.SuspiciousHosts = []string{"[unterminated"}
	cfg.Weights.Semver = 20

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "min_publish_score must be <= 100")
	assert.Contains(t, msg, "max_instructions_length must be > 0")
	assert.Contains(t, msg, "long_instructions_length (10) must be >= min_instructions_length (100)")
	assert.Contains(t, msg, "schema weights sum to 40")
	assert.Contains(t, msg, `duplicate category "data"`)
	assert.Contains(t, msg, `invalid suspicious_hosts pattern "[unterminated"`)
}

func TestValidate_WeightCapsAreUpperBounds(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Weights.Semver = 0
	cfg.Weights.Phases = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.MaxSchemaScore-5, cfg.Weights.SchemaMax())

	cfg.Weights.RequiredFields = 15
	require.NoError(t, cfg.Validate())

	cfg.Weights.Semver = 1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema weights sum to 26 (max 25)")
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Weights.Examples = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights.examples must be >= 0")
}

func TestValidate_EmptyCategories(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Categories = nil
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories must have at least 1 entries")
}

func TestConfigOverrides_Apply(t *testing.T) {
	o := domain.ConfigOverrides{
		MinPublishScore:      intp(70),
		Categories:           []string{"ops"},
		ExtraSuspiciousHosts: []string{"*.evil.example"},
		Weights:              map[string]int{"examples": 5, "phases": 0},
	}
	base := domain.DefaultConfig()
	cfg, err := o.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, 70, cfg.MinPublishScore)
	assert.Equal(t, base.MinDescriptionLength, cfg.MinDescriptionLength)
	assert.Equal(t, []string{"ops"}, cfg.Categories)
	assert.Contains(t, cfg.SuspiciousHosts, "webhook.site")
	assert.Contains(t, cfg.SuspiciousHosts, "*.evil.example")
	assert.Equal(t, 5, cfg.Weights.Examples)
	assert.Equal(t, 0, cfg.Weights.Phases)

	// base is left untouched
	assert.Equal(t, 50, base.MinPublishScore)
	assert.NotContains(t, base.SuspiciousHosts, "*.evil.example")
}

func TestConfigOverrides_ZeroValueIsExplicit(t *testing.T) {
	cfg, err := domain.ConfigOverrides{MinPublishScore: intp(0)}.Apply(domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MinPublishScore)
}

func TestConfigOverrides_UnknownWeight(t *testing.T) {
	_, err := domain.ConfigOverrides{Weights: map[string]int{"zeta": 1, "alpha": 1}}.Apply(domain.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown score bucket "alpha"`)
}
