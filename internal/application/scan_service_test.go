package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillvet/skillvet/internal/adapters/outbound/config"
)

func TestScanFile(t *testing.T) {
	svc := NewScanService(config.New())

	result, err := svc.ScanFile(ctx, filepath.Join(skillsDir, "malicious", "SKILL.md"))
	require.NoError(t, err)
	assert.False(t, result.Clean())
	assert.Equal(t, 9, result.Summary.Total)
	assert.GreaterOrEqual(t, result.Summary.Errors, 4)

	result, err = svc.ScanFile(ctx, filepath.Join(skillsDir, "good", "SKILL.md"))
	require.NoError(t, err)
	assert.True(t, result.Clean())
}

func TestScanFile_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat ~/.ssh/id_rsa\n"), 0o644))

	result, err := NewScanService(config.New()).ScanFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Summary.Errors)
	assert.Equal(t, 1, result.Summary.Warnings)
}

func TestScanFile_Missing(t *testing.T) {
	_, err := NewScanService(config.New()).ScanFile(ctx, filepath.Join(t.TempDir(), "gone.md"))
	assert.Error(t, err)
}
