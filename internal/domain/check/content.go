package check

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/skillvet/skillvet/internal/domain"
)

// Content checks the raw instructions body before any markdown analysis:
// size against the scan window, encoding, and hidden characters.
func Content(body string, cfg domain.EngineConfig) []domain.CheckResult {
	return []domain.CheckResult{
		checkSize(body, cfg.MaxInstructionsLength),
		checkEncoding(body),
		checkInvisible(body),
	}
}

func checkSize(body string, max int) domain.CheckResult {
	if len(body) > max {
		return result("content.size", domain.SeverityError, false,
			fmt.Sprintf("Instructions are %d bytes; only the first %d bytes can be scanned", len(body), max))
	}
	return result("content.size", domain.SeverityError, true,
		fmt.Sprintf("Instructions fit the %d byte scan limit", max))
}

func checkEncoding(body string) domain.CheckResult {
	if !utf8.ValidString(body) {
		return result("content.encoding", domain.SeverityError, false, "Instructions are not valid UTF-8")
	}
	if strings.IndexByte(body, 0) >= 0 {
		return result("content.encoding", domain.SeverityError, false, "Instructions contain NUL bytes")
	}
	return result("content.encoding", domain.SeverityError, true, "Instructions are valid UTF-8 text")
}

func checkInvisible(body string) domain.CheckResult {
	n := 0
	for i, r := range body {
		if i == 0 && r == '\uFEFF' {
			continue // leading byte order mark
		}
		if isInvisible(r) {
			n++
		}
	}
	if n > 0 {
		return result("content.invisible_characters", domain.SeverityWarning, false,
			fmt.Sprintf("Instructions contain %d invisible or bidirectional control character(s) that can hide text", n))
	}
	return result("content.invisible_characters", domain.SeverityWarning, true, "No hidden characters found")
}

// isInvisible reports zero-width, bidi control and Unicode tag characters.
func isInvisible(r rune) bool {
	switch {
	case r >= '\u200B' && r <= '\u200F', // zero-width space/joiners, LRM/RLM
		r >= '\u202A' && r <= '\u202E', // bidi embeddings and overrides
		r >= '\u2060' && r <= '\u2064', // word joiner, invisible operators
		r >= '\u2066' && r <= '\u2069', // bidi isolates
		r == '\uFEFF',
		r >= 0xE0000 && r <= 0xE007F: // tag characters
		return true
	}
	return false
}
