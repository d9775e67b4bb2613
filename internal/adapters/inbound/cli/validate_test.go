package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillvet/skillvet/internal/application"
)

func TestValidateCommand_TUI(t *testing.T) {
	out, err := run(t, "validate", fixture(t, "good"))
	require.NoError(t, err)
	assert.Contains(t, out, "csv-report-builder")
	assert.Contains(t, out, "✓ publishable")
}

func TestValidateCommand_JSON(t *testing.T) {
	out, err := run(t, "validate", fixture(t, "todo"), "--json", "--no-history")
	require.NoError(t, err, "without --ci a blocked skill is not an error")

	var results []application.SkillResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "release-notes-writer", results[0].Report.Slug)
	assert.False(t, results[0].Report.Publishable)
}

func TestValidateCommand_CI(t *testing.T) {
	_, err := run(t, "validate", fixture(t, "good"), "--ci")
	assert.NoError(t, err)

	_, err = run(t, "validate", fixture(t, "malicious"), "--ci")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 skill(s) not publishable")
	assert.Contains(t, err.Error(), "env-doctor:")
}

func TestValidateCommand_All(t *testing.T) {
	out, err := run(t, "validate", skillsDir, "--all", "--json", "--no-history")
	require.NoError(t, err)

	var results []application.SkillResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 4)
}

func TestValidateCommand_RecordsHistory(t *testing.T) {
	dir := fixture(t, "good")
	_, err := run(t, "validate", dir)
	require.NoError(t, err)
	_, err = run(t, "validate", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".skillvet", "history", "reports.json"))
	require.NoError(t, err)

	out, err := run(t, "score", dir, "--history")
	require.NoError(t, err)
	assert.Contains(t, out, "Validation History")
	assert.Contains(t, out, "csv-report-builder")
}

func TestValidateCommand_ConfigFlag(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "strict.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("min_publish_score: 100\nweights:\n  semver: 0\n"), 0o644))

	_, err := run(t, "--config", cfgPath, "validate", fixture(t, "good"), "--ci", "--no-history")
	require.Error(t, err, "good scores 95 once semver is worth nothing")
	assert.Contains(t, err.Error(), "quality score 95 is below the publish threshold")
}

func TestValidateCommand_MissingSkill(t *testing.T) {
	_, err := run(t, "validate", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
