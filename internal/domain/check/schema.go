package check

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/mod/semver"

	"github.com/skillvet/skillvet/internal/domain"
)

// Schema validates presence and shape of the submission metadata.
// Order: name, description_length, category, version, instructions.
func Schema(in domain.ValidationInput, cfg domain.EngineConfig) []domain.CheckResult {
	return []domain.CheckResult{
		checkName(in.Name),
		checkDescription(in.Description, cfg.MinDescriptionLength),
		checkCategory(in.CategorySlug, cfg),
		checkVersion(in.Version),
		checkInstructions(in.Instructions),
	}
}

func checkName(name string) domain.CheckResult {
	if strings.TrimSpace(name) == "" {
		return result("schema.name", domain.SeverityError, false, "Skill name is required")
	}
	return result("schema.name", domain.SeverityError, true, "Name is present")
}

func checkDescription(desc string, min int) domain.CheckResult {
	n := utf8.RuneCountInString(strings.TrimSpace(desc))
	if n < min {
		return result("schema.description_length", domain.SeverityWarning, false,
			fmt.Sprintf("Description is too short (%d chars, want at least %d)", n, min))
	}
	return result("schema.description_length", domain.SeverityWarning, true,
		fmt.Sprintf("Description length OK (%d chars)", n))
}

func checkCategory(slug string, cfg domain.EngineConfig) domain.CheckResult {
	if !cfg.IsKnownCategory(slug) {
		if slug == "" {
			return result("schema.category", domain.SeverityError, false, "Category is required")
		}
		return result("schema.category", domain.SeverityError, false,
			fmt.Sprintf("Unknown category %q", slug))
	}
	return result("schema.category", domain.SeverityError, true,
		fmt.Sprintf("Category %q is valid", slug))
}

func checkVersion(v string) domain.CheckResult {
	if !IsSemver(v) {
		return result("schema.version", domain.SeverityWarning, false,
			fmt.Sprintf("Version %q is not valid semver (expected MAJOR.MINOR.PATCH)", v))
	}
	return result("schema.version", domain.SeverityWarning, true,
		fmt.Sprintf("Version %s is valid semver", v))
}

func checkInstructions(body string) domain.CheckResult {
	if strings.TrimSpace(body) == "" {
		return result("schema.instructions", domain.SeverityError, false, "Instructions are required")
	}
	return result("schema.instructions", domain.SeverityError, true, "Instructions are present")
}

// IsSemver reports whether v is MAJOR.MINOR.PATCH with optional pre-release
// and build metadata. A leading "v" and shorthand forms like "1.2" are rejected.
func IsSemver(v string) bool {
	if v == "" || v[0] == 'v' || v[0] == 'V' {
		return false
	}
	if !semver.IsValid("v" + v) {
		return false
	}
	core := v
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core = v[:i]
	}
	return strings.Count(core, ".") == 2
}
