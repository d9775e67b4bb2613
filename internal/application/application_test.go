package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillvet/skillvet/internal/adapters/outbound/config"
	"github.com/skillvet/skillvet/internal/adapters/outbound/history"
	"github.com/skillvet/skillvet/internal/adapters/outbound/parser"
	"github.com/skillvet/skillvet/internal/adapters/outbound/scanner"
)

const skillsDir = "../../testdata/skills"

type stubGit struct {
	repo   bool
	commit string
}

func (g stubGit) IsGitRepo(string) bool              { return g.repo }
func (g stubGit) CommitHash(string) (string, error) { return g.commit, nil }

func newValidateService(git stubGit) *ValidateService {
	svc := NewValidateService(config.New(), parser.New(), scanner.New(), history.New(), git)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

// copySkill copies a fixture skill into a fresh project root and returns it.
func copySkill(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(skillsDir, name, "SKILL.md"))
	require.NoError(t, err)
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), data, 0o644))
	return dir
}

func writeConfig(t *testing.T, root, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(body), 0o644))
}

var ctx = context.Background()
