package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/domain/engine"
	"github.com/skillvet/skillvet/internal/logger"
)

// SkillResult is the validation outcome for one skill file.
type SkillResult struct {
	Path      string                  `json:"path"`
	Report    domain.ValidationReport `json:"report"`
	Breakdown domain.QualityBreakdown `json:"breakdown"`
}

// ValidateService orchestrates the validation pipeline:
// load config → build engine → read SKILL.md → validate → record history.
type ValidateService struct {
	configLoader domain.ConfigLoader
	reader       domain.SkillReader
	finder       domain.SkillFinder
	history      domain.ReportHistory
	git          domain.GitInfo
	now          func() time.Time
}

// NewValidateService creates a new ValidateService with all required dependencies.
func NewValidateService(
	configLoader domain.ConfigLoader,
	reader domain.SkillReader,
	finder domain.SkillFinder,
	history domain.ReportHistory,
	git domain.GitInfo,
) *ValidateService {
	return &ValidateService{
		configLoader: configLoader, reader: reader, finder: finder,
		history: history, git: git, now: time.Now,
	}
}

// Validate validates the skill at path, a SKILL.md file or a directory
// containing one. Configuration is resolved from the skill's directory.
func (s *ValidateService) Validate(ctx context.Context, path string) (*SkillResult, error) {
	root := SkillRoot(path)
	eng, err := LoadEngine(ctx, s.configLoader, root)
	if err != nil {
		return nil, err
	}
	return s.validateWith(ctx, eng, path)
}

// ValidateAll validates every SKILL.md under root with root's configuration.
func (s *ValidateService) ValidateAll(ctx context.Context, root string) ([]SkillResult, error) {
	eng, err := LoadEngine(ctx, s.configLoader, root)
	if err != nil {
		return nil, err
	}

	paths, err := s.finder.Find(root)
	if err != nil {
		return nil, fmt.Errorf("finding skills: %w", err)
	}
	logger.G(ctx).WithField("root", root).Debugf("found %d skill(s)", len(paths))

	results := make([]SkillResult, 0, len(paths))
	for _, p := range paths {
		r, err := s.validateWith(ctx, eng, p)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, nil
}

func (s *ValidateService) validateWith(ctx context.Context, eng *engine.Engine, path string) (*SkillResult, error) {
	skill, err := s.reader.Read(path)
	if err != nil {
		return nil, err
	}

	report := eng.ValidateSkill(skill.Input)
	logger.G(ctx).WithFields(logrus.Fields{
		"slug":        report.Slug,
		"score":       report.QualityScore,
		"errors":      report.Summary.Errors,
		"warnings":    report.Summary.Warnings,
		"publishable": report.Publishable,
	}).Info("skill validated")

	return &SkillResult{
		Path:      skill.Path,
		Report:    report,
		Breakdown: eng.ComputeDetailedScore(skill.Input),
	}, nil
}

// Record appends one history entry per result under root, stamped with the
// current time and the git HEAD commit when root is inside a repository.
func (s *ValidateService) Record(ctx context.Context, root string, results []SkillResult) error {
	ts := s.now().UTC().Format(time.RFC3339)
	var commit string
	if s.git.IsGitRepo(root) {
		if hash, err := s.git.CommitHash(root); err == nil {
			commit = hash
		} else {
			logger.G(ctx).WithError(err).Debug("no commit hash for history entry")
		}
	}

	entries := make([]domain.ReportEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, domain.NewReportEntry(r.Report, ts, commit))
	}
	if err := s.history.Append(root, entries...); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// History returns the recorded entries under root, oldest first.
func (s *ValidateService) History(root string) ([]domain.ReportEntry, error) {
	return s.history.Load(root)
}

// LoadEngine resolves root's configuration and builds an engine from it.
func LoadEngine(ctx context.Context, loader domain.ConfigLoader, root string) (*engine.Engine, error) {
	cfg, err := loader.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.G(ctx).WithField("root", root).
		WithField("min_publish_score", cfg.MinPublishScore).
		Debug("config loaded")
	return engine.New(cfg)
}

// SkillRoot returns the directory that owns path: path itself for a
// directory, its parent for a file.
func SkillRoot(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}
