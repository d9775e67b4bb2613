package application

import (
	"context"
	"fmt"
	"os"

	"github.com/skillvet/skillvet/internal/domain"
)

// ScanResult holds the security findings for one file.
type ScanResult struct {
	Path    string               `json:"path"`
	Checks  []domain.CheckResult `json:"checks"`
	Summary domain.Summary       `json:"summary"`
}

// Clean reports whether no security rule fired, warnings included.
func (r ScanResult) Clean() bool {
	return r.Summary.Errors == 0 && r.Summary.Warnings == 0
}

// ScanService runs only the security rules over arbitrary text files, for
// reviewing content before it is shaped into a skill.
type ScanService struct {
	configLoader domain.ConfigLoader
}

func NewScanService(configLoader domain.ConfigLoader) *ScanService {
	return &ScanService{configLoader: configLoader}
}

// ScanFile scans the whole file at path, frontmatter included.
func (s *ScanService) ScanFile(ctx context.Context, path string) (*ScanResult, error) {
	eng, err := LoadEngine(ctx, s.configLoader, SkillRoot(path))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	checks := eng.RunSecurityChecks(string(data))
	return &ScanResult{Path: path, Checks: checks, Summary: domain.Summarize(checks)}, nil
}
