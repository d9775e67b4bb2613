package application

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_GoodSkill(t *testing.T) {
	svc := newValidateService(stubGit{})
	result, err := svc.Validate(ctx, filepath.Join(skillsDir, "good"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(skillsDir, "good", "SKILL.md"), result.Path)
	assert.Equal(t, "csv-report-builder", result.Report.Slug)
	assert.True(t, result.Report.Publishable, result.Report.BlockingMessage())
	assert.GreaterOrEqual(t, result.Report.QualityScore, 90)
	assert.Equal(t, result.Report.QualityScore, result.Breakdown.Total)
}

func TestValidate_AcceptsFilePath(t *testing.T) {
	svc := newValidateService(stubGit{})
	result, err := svc.Validate(ctx, filepath.Join(skillsDir, "todo", "SKILL.md"))
	require.NoError(t, err)

	assert.Equal(t, "release-notes-writer", result.Report.Slug)
	assert.False(t, result.Report.Publishable)
	c, ok := result.Report.Check("structure.no_todos")
	require.True(t, ok)
	assert.False(t, c.Passed)
}

func TestValidate_MaliciousSkill(t *testing.T) {
	svc := newValidateService(stubGit{})
	result, err := svc.Validate(ctx, filepath.Join(skillsDir, "malicious"))
	require.NoError(t, err)

	assert.False(t, result.Report.Publishable)
	for _, id := range []string{
		"security.shellInjection",
		"security.envDumping",
		"security.suspiciousUrls",
		"security.promptInjection",
		"security.disableSecurity",
	} {
		c, ok := result.Report.Check(id)
		require.True(t, ok, id)
		assert.False(t, c.Passed, id)
	}
}

func TestValidate_MissingSkill(t *testing.T) {
	svc := newValidateService(stubGit{})
	_, err := svc.Validate(ctx, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading skill")
}

func TestValidate_UsesProjectConfig(t *testing.T) {
	root := t.TempDir()
	dir := copySkill(t, root, "good")
	writeConfig(t, dir, "min_publish_score: 101\n")

	_, err := newValidateService(stubGit{}).Validate(ctx, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestValidateAll(t *testing.T) {
	svc := newValidateService(stubGit{})
	results, err := svc.ValidateAll(ctx, skillsDir)
	require.NoError(t, err)
	require.Len(t, results, 4)

	publishable := map[string]bool{}
	for _, r := range results {
		publishable[filepath.Base(filepath.Dir(r.Path))] = r.Report.Publishable
	}
	assert.Equal(t, map[string]bool{
		"good":      true,
		"malicious": false,
		"minimal":   false,
		"todo":      false,
	}, publishable)
}

func TestRecordAndHistory(t *testing.T) {
	root := t.TempDir()
	copySkill(t, root, "good")
	copySkill(t, root, "minimal")

	svc := newValidateService(stubGit{repo: true, commit: "abc123"})
	results, err := svc.ValidateAll(ctx, root)
	require.NoError(t, err)
	require.NoError(t, svc.Record(ctx, root, results))

	entries, err := svc.History(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "2026-03-01T12:00:00Z", e.Timestamp)
		assert.Equal(t, "abc123", e.CommitHash)
	}
	assert.Equal(t, "csv-report-builder", entries[0].Slug)
	assert.True(t, entries[0].Publishable)
	assert.Equal(t, 10, entries[1].QualityScore)
	assert.Equal(t, "F", entries[1].Grade)
}

func TestRecord_OutsideGitRepo(t *testing.T) {
	root := t.TempDir()
	copySkill(t, root, "minimal")

	svc := newValidateService(stubGit{})
	results, err := svc.ValidateAll(ctx, root)
	require.NoError(t, err)
	require.NoError(t, svc.Record(ctx, root, results))

	entries, err := svc.History(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].CommitHash)
}

func TestSkillRoot(t *testing.T) {
	dir := filepath.Join(skillsDir, "good")
	assert.Equal(t, dir, SkillRoot(dir))
	assert.Equal(t, dir, SkillRoot(filepath.Join(dir, "SKILL.md")))
}
