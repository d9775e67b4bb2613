package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skillvet/skillvet/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lipgloss.Color("#A3E635"), // lime
		"C":  warning,
		"D":  lipgloss.Color("#FB923C"), // orange
		"F":  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats one validation report: a header box with the score,
// every check grouped by category, then the publish verdict.
func RenderReport(path string, report domain.ValidationReport) string {
	var b strings.Builder

	// ── Header ──
	grade := report.Grade()
	title := headerStyle.Render(report.Slug)
	subtitle := dimStyle.Render(shortenPath(path))
	scoreLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%d / 100  %s", report.QualityScore, grade))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreLine))
	b.WriteString("\n\n")

	// ── Checks ──
	renderCheckSection(&b, "Schema", report.Checks.Schema)
	renderCheckSection(&b, "Content", report.Checks.Content)
	renderCheckSection(&b, "Structure", report.Checks.Structure)
	renderCheckSection(&b, "Security", report.Checks.Security)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Verdict ──
	b.WriteString("  " + summaryLine(report.Summary) + "\n")
	if report.Publishable {
		b.WriteString("  " + passStyle.Render("✓ publishable") + "\n")
	} else {
		b.WriteString("  " + failStyle.Render("✗ not publishable") + "\n")
		if msg := report.BlockingMessage(); msg != "" {
			b.WriteString("    " + dimStyle.Render(msg) + "\n")
		} else {
			b.WriteString("    " + dimStyle.Render("quality score is below the publish threshold") + "\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

// RenderBreakdown formats the quality score split into its two parts with
// the awarded buckets listed beneath.
func RenderBreakdown(slug string, bd domain.QualityBreakdown) string {
	var b strings.Builder

	grade := domain.GradeFor(bd.Total)
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%d / 100  %s", bd.Total, grade))
	b.WriteString(boxStyle.Render(headerStyle.Render(slug) + "\n" + dimStyle.Render("Quality Score") + "\n\n" + scoreStyled))
	b.WriteString("\n\n")

	renderPart(&b, "Schema", bd.Schema, domain.MaxSchemaScore)
	renderPart(&b, "Instructions", bd.Instructions, domain.MaxInstructionsScore)

	if len(bd.Details) > 0 {
		b.WriteString("\n")
		for _, d := range bd.Details {
			fmt.Fprintf(&b, "    %s %s\n", passStyle.Render("●"), d)
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderPart(b *strings.Builder, name string, score, maxScore int) {
	pct := 0
	if maxScore > 0 {
		pct = score * 100 / maxScore
	}
	label := catNameStyle.Render(padRight(name, 14))
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(pct)).Render(fmt.Sprintf("%d", score))
	fmt.Fprintf(b, "  %s %s  %s %s\n", label, coloredBar(pct, 20), scoreText, dimStyle.Render(fmt.Sprintf("/ %d", maxScore)))
}

func summaryLine(s domain.Summary) string {
	parts := []string{dimStyle.Render(fmt.Sprintf("%d/%d passed", s.Passed, s.Total))}
	if s.Errors > 0 {
		parts = append(parts, errorTagStyle.Render(fmt.Sprintf("%d errors", s.Errors)))
	}
	if s.Warnings > 0 {
		parts = append(parts, warnTagStyle.Render(fmt.Sprintf("%d warnings", s.Warnings)))
	}
	return strings.Join(parts, "  ")
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats validation history for terminal output.
func RenderHistory(entries []domain.ReportEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	last := map[string]int{}
	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.QualityScore)).
			Render(fmt.Sprintf("%d/100", e.QualityScore))

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			padRight(e.Slug, 24),
			scoreStyled,
			e.Grade,
		)

		if prev, ok := last[e.Slug]; ok {
			diff := e.QualityScore - prev
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}
		last[e.Slug] = e.QualityScore

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}
