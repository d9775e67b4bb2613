// Package history keeps a rolling log of validation reports per project root.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillvet/skillvet/internal/domain"
)

const historyFile = ".skillvet/history/reports.json"

// MaxEntries bounds the log; the oldest entries are dropped first.
const MaxEntries = 1000

// FileHistory implements domain.ReportHistory using JSON file storage.
type FileHistory struct {
	limit int
}

func New() *FileHistory {
	return &FileHistory{limit: MaxEntries}
}

// NewWithLimit returns a history that keeps at most limit entries.
func NewWithLimit(limit int) *FileHistory {
	return &FileHistory{limit: limit}
}

// Append adds entries to the log under root in one write.
func (h *FileHistory) Append(root string, entries ...domain.ReportEntry) error {
	if len(entries) == 0 {
		return nil
	}

	all, err := h.Load(root)
	if err != nil {
		return err
	}
	all = append(all, entries...)
	if h.limit > 0 && len(all) > h.limit {
		all = all[len(all)-h.limit:]
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(root, historyFile), data)
}

func (h *FileHistory) Load(root string) ([]domain.ReportEntry, error) {
	data, err := os.ReadFile(filepath.Join(root, historyFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.ReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}
	return entries, nil
}

// writeAtomic replaces fp through a temp file in the same directory so a
// crashed run never leaves a truncated log behind.
func writeAtomic(fp string, data []byte) error {
	dir := filepath.Dir(fp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".reports-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fp)
}
