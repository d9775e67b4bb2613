package domain

// Skill is a submission read from a SKILL.md file.
type Skill struct {
	// Path is the SKILL.md file; Dir is the directory holding it.
	Path  string
	Dir   string
	Input ValidationInput
}

// ConfigLoader resolves the engine configuration for a project root.
type ConfigLoader interface {
	Load(root string) (EngineConfig, error)
}

// SkillReader parses a skill file into a submission.
type SkillReader interface {
	Read(path string) (*Skill, error)
}

// SkillFinder lists the SKILL.md files under a root, sorted.
type SkillFinder interface {
	Find(root string) ([]string, error)
}

// ReportHistory persists validation history entries.
type ReportHistory interface {
	Append(root string, entries ...ReportEntry) error
	Load(root string) ([]ReportEntry, error)
}

// GitInfo provides git repository information.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}
