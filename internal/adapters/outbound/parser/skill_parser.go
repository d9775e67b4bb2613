package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/skillvet/skillvet/internal/domain"
)

// ErrNoFrontmatter is returned for skill files without a YAML header.
var ErrNoFrontmatter = errors.New("missing frontmatter")

// SkillParser implements domain.SkillReader for SKILL.md files.
type SkillParser struct {
	md goldmark.Markdown
}

func New() *SkillParser {
	return &SkillParser{md: goldmark.New(goldmark.WithExtensions(meta.Meta))}
}

// Read loads path, or path/SKILL.md when path is a directory.
func (p *SkillParser) Read(path string) (*domain.Skill, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "SKILL.md")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skill: %w", err)
	}

	in, err := p.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if in.Slug == "" {
		abs, _ := filepath.Abs(dir)
		in.Slug = Slug(filepath.Base(abs))
	}
	return &domain.Skill{Path: path, Dir: dir, Input: in}, nil
}

// Parse maps SKILL.md content to a submission. Frontmatter keys: name,
// description, slug, category, version, platforms. The markdown body after
// the frontmatter becomes the instructions.
func (p *SkillParser) Parse(content []byte) (domain.ValidationInput, error) {
	pctx := parser.NewContext()
	p.md.Parser().Parse(text.NewReader(content), parser.WithContext(pctx))

	fm, err := meta.TryGet(pctx)
	if err != nil {
		return domain.ValidationInput{}, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if fm == nil {
		return domain.ValidationInput{}, ErrNoFrontmatter
	}

	in := domain.ValidationInput{
		Name:         scalar(fm["name"]),
		Description:  scalar(fm["description"]),
		Slug:         scalar(fm["slug"]),
		CategorySlug: scalar(fm["category"]),
		Version:      scalar(fm["version"]),
		Platforms:    list(fm["platforms"]),
		Instructions: body(content),
	}
	if in.Slug == "" {
		in.Slug = Slug(in.Name)
	}
	return in, nil
}

// Slug derives a kebab-case slug: "PDFExtract" and "pdf extract" both
// become "pdf-extract".
func Slug(name string) string {
	var words []string
	for _, field := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		for _, w := range camelcase.Split(field) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, "-")
}

// scalar stringifies a frontmatter value. Numbers keep their shortest form,
// so "version: 1.0" reads back as "1".
func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func list(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := scalar(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	}
	return nil
}

// body returns the content after the closing frontmatter delimiter.
func body(content []byte) string {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	lines := strings.Split(string(content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return string(content)
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\r\n")
		}
	}
	return string(content)
}
