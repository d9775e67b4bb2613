package scanner

import (
	"os"
	"path/filepath"
	"sort"
)

// SkillFile is the file name that marks a skill directory.
const SkillFile = "SKILL.md"

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".skillvet":    true,
	"dist":         true,
}

// FileScanner implements domain.SkillFinder by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Find returns every SKILL.md under root, sorted. The root itself is never
// skipped, so pointing it at a vendored skill tree still works.
func (s *FileScanner) Find(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == SkillFile {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}
