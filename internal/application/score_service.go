package application

import (
	"context"

	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/domain/engine"
)

// ScoreResult is the quality score of one skill without the checks.
type ScoreResult struct {
	Slug      string                  `json:"slug"`
	Score     int                     `json:"quality_score"`
	Grade     string                  `json:"grade"`
	Breakdown domain.QualityBreakdown `json:"breakdown"`
}

// ScoreService computes quality scores, the cheap path used for live
// feedback while a skill is being written.
type ScoreService struct {
	configLoader domain.ConfigLoader
	reader       domain.SkillReader
}

func NewScoreService(configLoader domain.ConfigLoader, reader domain.SkillReader) *ScoreService {
	return &ScoreService{configLoader: configLoader, reader: reader}
}

// Score scores the skill at path.
func (s *ScoreService) Score(ctx context.Context, path string) (*ScoreResult, error) {
	eng, err := LoadEngine(ctx, s.configLoader, SkillRoot(path))
	if err != nil {
		return nil, err
	}
	skill, err := s.reader.Read(path)
	if err != nil {
		return nil, err
	}
	return NewScoreResult(eng, skill.Input), nil
}

// NewScoreResult scores an in-memory submission.
func NewScoreResult(eng *engine.Engine, in domain.ValidationInput) *ScoreResult {
	score := eng.ComputeQualityScore(in)
	return &ScoreResult{
		Slug:      in.Slug,
		Score:     score,
		Grade:     domain.GradeFor(score),
		Breakdown: eng.ComputeDetailedScore(in),
	}
}
