package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/skillvet/skillvet/internal/adapters/outbound/config"
	"github.com/skillvet/skillvet/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".skillvet.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := appconfig.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")
	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_PartialOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
min_publish_score: 70
categories: [data, ops]
extra_suspicious_hosts:
  - "*.exfil.example"
weights:
  examples: 5
`)
	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)

	def := domain.DefaultConfig()
	assert.Equal(t, 70, cfg.MinPublishScore)
	assert.Equal(t, def.MinDescriptionLength, cfg.MinDescriptionLength)
	assert.Equal(t, []string{"data", "ops"}, cfg.Categories)
	assert.Contains(t, cfg.SuspiciousHosts, "*.exfil.example")
	assert.Len(t, cfg.SuspiciousHosts, len(def.SuspiciousHosts)+1)
	assert.Equal(t, 5, cfg.Weights.Examples)
	assert.Equal(t, def.Weights.Phases, cfg.Weights.Phases)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .skillvet.yaml")
}

func TestYAMLLoader_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "min_publish_scor: 10\n")
	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_publish_scor")
}

func TestYAMLLoader_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
min_publish_score: 101
long_instructions_length: 10
`)
	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .skillvet.yaml")
	assert.Contains(t, err.Error(), "min_publish_score")
	assert.Contains(t, err.Error(), "long_instructions_length")
}

func TestYAMLLoader_UnknownWeight(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "weights:\n  vibes: 3\n")
	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown score bucket "vibes"`)
}

func TestYAMLLoader_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "strict.yaml")
	require.NoError(t, os.WriteFile(p, []byte("min_publish_score: 90\n"), 0644))

	cfg, err := appconfig.NewWithPath(p).Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.MinPublishScore)

	_, err = appconfig.NewWithPath(filepath.Join(dir, "missing.yaml")).Load(dir)
	assert.Error(t, err, "an explicit config file must exist")
}
