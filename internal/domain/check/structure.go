package check

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/domain/document"
)

var todoMarker = regexp.MustCompile(`\b(?:TODO|FIXME)\b`)

// Structure validates the markdown shape of the analyzed instructions.
// Order: no_todos, code_block_langs, heading_hierarchy, not_trivial.
func Structure(doc document.Document, cfg domain.EngineConfig) []domain.CheckResult {
	return []domain.CheckResult{
		checkNoTodos(doc),
		checkCodeBlockLangs(doc),
		checkHeadingHierarchy(doc),
		checkNotTrivial(doc, cfg.TrivialInstructionsLength),
	}
}

func checkNoTodos(doc document.Document) domain.CheckResult {
	if m := todoMarker.FindString(doc.Text); m != "" {
		return result("structure.no_todos", domain.SeverityError, false,
			fmt.Sprintf("Instructions contain an unfinished %s marker", m))
	}
	return result("structure.no_todos", domain.SeverityError, true, "No TODO or FIXME markers")
}

func checkCodeBlockLangs(doc document.Document) domain.CheckResult {
	if n := doc.UnlabeledCodeBlocks(); n > 0 {
		return result("structure.code_block_langs", domain.SeverityWarning, false,
			fmt.Sprintf("%d of %d code block(s) lack a language hint after the opening fence", n, len(doc.CodeBlocks)))
	}
	return result("structure.code_block_langs", domain.SeverityWarning, true, "All code blocks declare a language")
}

func checkHeadingHierarchy(doc document.Document) domain.CheckResult {
	prev := 0
	for _, h := range doc.Headings {
		if prev > 0 && h.Level > prev+1 {
			return result("structure.heading_hierarchy", domain.SeverityWarning, false,
				fmt.Sprintf("Heading %q jumps from h%d to h%d", h.Text, prev, h.Level))
		}
		prev = h.Level
	}
	return result("structure.heading_hierarchy", domain.SeverityWarning, true, "Heading levels are sequential")
}

func checkNotTrivial(doc document.Document, min int) domain.CheckResult {
	n := utf8.RuneCountInString(strings.TrimSpace(doc.Text))
	if n < min && !doc.HasStructure() {
		return result("structure.not_trivial", domain.SeverityError, false,
			fmt.Sprintf("Instructions are too short to be useful (%d chars, no headings, lists or code)", n))
	}
	return result("structure.not_trivial", domain.SeverityError, true, "Instructions carry real guidance")
}
