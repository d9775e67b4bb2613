package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/domain/check"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderScan formats the security findings for a scanned file. Only failed
// rules are listed.
func RenderScan(path string, checks []domain.CheckResult) string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render("Security Scan"), fileStyle.Render(shortenPath(path)))
	b.WriteString("  " + separatorLine + "\n\n")

	var found []domain.CheckResult
	for _, c := range checks {
		if !c.Passed {
			found = append(found, c)
		}
	}
	if len(found) == 0 {
		b.WriteString("  " + passStyle.Render(fmt.Sprintf("No findings (%d rules).", len(checks))) + "\n\n")
		return b.String()
	}

	for _, c := range found {
		fmt.Fprintf(&b, "    %s %s\n", severityTag(c.Severity), c.ID)
		fmt.Fprintf(&b, "          %s\n", dimStyle.Render(c.Message))
	}
	b.WriteString("\n")
	b.WriteString("  " + summaryLine(domain.Summarize(checks)) + "\n")
	b.WriteString("  " + hintStyle.Render("Matches are heuristics; review each finding before publishing.") + "\n\n")
	return b.String()
}

// RenderRules lists the security rule table.
func RenderRules(rules []check.Rule) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + sectionHeaderStyle.Render("Security Rules") + "\n\n")
	for _, r := range rules {
		fmt.Fprintf(&b, "    %s %s\n", severityTag(r.Severity), padRight(r.ID, 32))
		fmt.Fprintf(&b, "          %s\n", dimStyle.Render(r.Message))
	}
	b.WriteString("\n")
	return b.String()
}

func renderCheckSection(b *strings.Builder, title string, checks []domain.CheckResult) {
	if len(checks) == 0 {
		return
	}

	s := domain.Summarize(checks)
	fmt.Fprintf(b, "  %s %s\n",
		catNameStyle.Render(padRight(title, 12)),
		dimStyle.Render(fmt.Sprintf("%d/%d", s.Passed, s.Total)),
	)

	for _, c := range checks {
		if c.Passed {
			fmt.Fprintf(b, "    %s %s\n", passStyle.Render("●"), faintStyle.Render(c.Message))
			continue
		}
		fmt.Fprintf(b, "    %s %s\n", severityTag(c.Severity), c.Message)
	}
	b.WriteString("\n")
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	default:
		return warnTagStyle.Render("warn ")
	}
}
