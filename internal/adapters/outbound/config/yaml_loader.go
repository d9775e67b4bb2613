package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/skillvet/skillvet/internal/domain"
)

// FileName is the per-project configuration file.
const FileName = ".skillvet.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .skillvet.yaml.
type YAMLLoader struct {
	path string
}

// New creates a YAMLLoader that looks for .skillvet.yaml in the project root.
func New() *YAMLLoader { return &YAMLLoader{} }

// NewWithPath creates a YAMLLoader bound to an explicit file. The file must exist.
func NewWithPath(path string) *YAMLLoader { return &YAMLLoader{path: path} }

// Load reads the configuration for root.
// Returns DefaultConfig if no file exists and no explicit path was given.
func (l *YAMLLoader) Load(root string) (domain.EngineConfig, error) {
	path := l.path
	if path == "" {
		path = filepath.Join(root, FileName)
	}
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if l.path == "" && errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.EngineConfig{}, err
	}

	overrides, err := decode(data)
	if err != nil {
		return domain.EngineConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	cfg, err := overrides.Apply(domain.DefaultConfig())
	if err != nil {
		return domain.EngineConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// decode rejects unknown keys so typos surface instead of silently
// falling back to defaults.
func decode(data []byte) (domain.ConfigOverrides, error) {
	var o domain.ConfigOverrides
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return domain.ConfigOverrides{}, err
	}
	return o, nil
}
