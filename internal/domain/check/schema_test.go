package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/domain/check"
)

func byID(t *testing.T, results []domain.CheckResult, id string) domain.CheckResult {
	t.Helper()
	for _, r := range results {
		if r.ID == id {
			return r
		}
	}
	require.Failf(t, "missing check", "no result with id %s", id)
	return domain.CheckResult{}
}

func validInput() domain.ValidationInput {
	return domain.ValidationInput{
		Name:         "PDF Extract",
		Description:  "Extracts tables from PDF files into CSV rows",
		CategorySlug: "data",
		Version:      "1.2.0",
		Instructions: "Open the PDF and extract every table.",
	}
}

func TestSchema_OrderAndSeverities(t *testing.T) {
	results := check.Schema(validInput(), domain.DefaultConfig())

	want := []struct {
		id  string
		sev domain.Severity
	}{
		{"schema.name", domain.SeverityError},
		{"schema.description_length", domain.SeverityWarning},
		{"schema.category", domain.SeverityError},
		{"schema.version", domain.SeverityWarning},
		{"schema.instructions", domain.SeverityError},
	}
	require.Len(t, results, len(want))
	for i, w := range want {
		assert.Equal(t, w.id, results[i].ID)
		assert.Equal(t, w.sev, results[i].Severity, w.id)
		assert.True(t, results[i].Passed, w.id)
	}
}

func TestSchema_Failures(t *testing.T) {
	in := domain.ValidationInput{
		Name:         "   ",
		Description:  "short",
		CategorySlug: "gardening",
		Version:      "v1.0.0",
		Instructions: "\n\t",
	}
	results := check.Schema(in, domain.DefaultConfig())
	for _, r := range results {
		assert.False(t, r.Passed, r.ID)
	}
	assert.Contains(t, byID(t, results, "schema.category").Message, `"gardening"`)
	assert.Contains(t, byID(t, results, "schema.description_length").Message, "5 chars")
}

func TestSchema_EmptyCategory(t *testing.T) {
	in := validInput()
	in.CategorySlug = ""
	r := byID(t, check.Schema(in, domain.DefaultConfig()), "schema.category")
	assert.False(t, r.Passed)
	assert.Equal(t, "Category is required", r.Message)
}

func TestSchema_DescriptionCountsRunes(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.MinDescriptionLength = 5
	in := validInput()
	in.Description = "ééééé"
	assert.True(t, byID(t, check.Schema(in, cfg), "schema.description_length").Passed)
}

func TestIsSemver(t *testing.T) {
	valid := []string{"0.0.1", "1.2.3", "10.20.30", "1.0.0-alpha.1", "1.0.0+build.5", "2.0.0-rc.1+sha.abc"}
	invalid := []string{"", "v1.2.3", "V1.2.3", "1.2", "1", "1.2.3.4", "01.2.3", "latest", "1.2.x"}
	for _, v := range valid {
		assert.True(t, check.IsSemver(v), v)
	}
	for _, v := range invalid {
		assert.False(t, check.IsSemver(v), v)
	}
}
