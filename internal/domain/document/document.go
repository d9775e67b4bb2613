// Package document analyzes a skill's instructions markdown once and exposes
// the structural facts and bonus signals that checks and scoring share.
package document

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is an ATX or setext heading outside code blocks.
type Heading struct {
	Level int
	Text  string
}

// CodeBlock is a fenced code block. Language is the first word of the info
// string and empty when the fence carries no hint.
type CodeBlock struct {
	Language string
}

// Signals are the bonus detectors the quality scorer consumes.
type Signals struct {
	HasPhases        bool
	HasInputOutput   bool
	HasExamples      bool
	HasErrorHandling bool
	HasConstraints   bool
	HasOutputFormat  bool
}

// Document is the analyzed scan window of an instructions body.
type Document struct {
	// Text is the analyzed window, at most maxBytes long.
	Text string
	// Length is the rune length of the full, untruncated body.
	Length    int
	Truncated bool

	Headings   []Heading
	CodeBlocks []CodeBlock
	ListItems  int
	// LongestOrderedList is the item count of the largest ordered list.
	LongestOrderedList int

	Signals Signals
}

// UnlabeledCodeBlocks counts fenced blocks without a language hint.
func (d Document) UnlabeledCodeBlocks() int {
	n := 0
	for _, cb := range d.CodeBlocks {
		if cb.Language == "" {
			n++
		}
	}
	return n
}

// HasStructure reports whether any structural marker is present.
func (d Document) HasStructure() bool {
	return len(d.Headings) > 0 || len(d.CodeBlocks) > 0 || d.ListItems > 0
}

var markdown = goldmark.New()

// Analyze parses the first maxBytes of body. A non-positive maxBytes
// analyzes the whole body.
func Analyze(body string, maxBytes int) Document {
	window, truncated := Window(body, maxBytes)
	doc := Document{
		Text:      window,
		Length:    utf8.RuneCountInString(body),
		Truncated: truncated,
	}

	src := []byte(window)
	root := markdown.Parser().Parse(text.NewReader(src))
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			doc.Headings = append(doc.Headings, Heading{
				Level: node.Level,
				Text:  strings.TrimSpace(inlineText(node, src)),
			})
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			doc.CodeBlocks = append(doc.CodeBlocks, CodeBlock{Language: string(node.Language(src))})
			return ast.WalkSkipChildren, nil
		case *ast.List:
			if node.IsOrdered() && node.ChildCount() > doc.LongestOrderedList {
				doc.LongestOrderedList = node.ChildCount()
			}
		case *ast.ListItem:
			doc.ListItems++
		}
		return ast.WalkContinue, nil
	})

	doc.Signals = detectSignals(doc)
	return doc
}

// Window returns at most maxBytes of s, cut back to a rune boundary.
func Window(s string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s, false
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// labelPattern matches a line that opens with one of words followed by a
// colon, optionally bulleted or bold ("- **Input:**", "Output:").
func labelPattern(words string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:[-*+][ \t]+)?(?:\*\*|__)?(?:` + words +
		`)[ \t]*(?::|(?:\*\*|__)[ \t]*:)`)
}

var (
	phaseMarker = regexp.MustCompile(`(?im)^[ \t]*(?:#{1,6}[ \t]+|[-*+][ \t]+|\*\*|__)?(?:phase|step|stage)[ \t]+\d+`)

	ioHeading = regexp.MustCompile(`(?i)^(?:inputs?|outputs?|parameters|arguments|returns|expected (?:inputs?|outputs?))\b`)
	ioLabel   = labelPattern(`inputs?|outputs?|parameters|arguments|returns`)

	exampleHeading = regexp.MustCompile(`(?i)\bexamples?\b`)
	exampleLabel   = labelPattern(`examples?|for example`)

	errorHandling = regexp.MustCompile(`(?i)\b(?:error[ -]handling|handle (?:any |all |the )?(?:errors?|failures?|exceptions?)|on (?:error|failure)|if (?:it|this|that|the [a-z]+) fails|retry|retries|fall ?back|troubleshoot(?:ing)?|gracefully)\b`)

	constraints = regexp.MustCompile(`(?i)\b(?:important|critical|constraints?|must not|never|do not)\b`)

	outputFormat = regexp.MustCompile(`(?i)\b(?:output format|response format|format (?:of )?(?:the|your) (?:output|response|answer)|(?:respond|reply|return|output|answer) (?:only )?(?:with |in |as )?(?:valid )?(?:json|yaml|markdown|csv|a (?:markdown )?table|a bulleted list)|json schema)\b`)
)

func detectSignals(d Document) Signals {
	var s Signals
	s.HasPhases = d.LongestOrderedList >= 3 || phaseMarker.MatchString(d.Text)

	for _, h := range d.Headings {
		if ioHeading.MatchString(h.Text) {
			s.HasInputOutput = true
		}
		if exampleHeading.MatchString(h.Text) {
			s.HasExamples = true
		}
	}
	if !s.HasInputOutput {
		s.HasInputOutput = ioLabel.MatchString(d.Text)
	}
	if !s.HasExamples {
		s.HasExamples = len(d.CodeBlocks) > 0 || exampleLabel.MatchString(d.Text)
	}

	s.HasErrorHandling = errorHandling.MatchString(d.Text)
	s.HasConstraints = constraints.MatchString(d.Text)
	s.HasOutputFormat = outputFormat.MatchString(d.Text)
	return s
}
