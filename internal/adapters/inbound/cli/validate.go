package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillvet/skillvet/internal/adapters/outbound/gitinfo"
	"github.com/skillvet/skillvet/internal/adapters/outbound/history"
	"github.com/skillvet/skillvet/internal/adapters/outbound/parser"
	"github.com/skillvet/skillvet/internal/adapters/outbound/scanner"
	"github.com/skillvet/skillvet/internal/adapters/outbound/tui"
	"github.com/skillvet/skillvet/internal/application"
	"github.com/skillvet/skillvet/internal/logger"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		all        bool
		ciMode     bool
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path...]",
		Short: "Validate skills and decide whether they can be published",
		Long: "Run every schema, content, structure and security check against one or more skills. " +
			"Each path is a SKILL.md file or a directory holding one; with --all every SKILL.md " +
			"under each path is validated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			svc := application.NewValidateService(
				opts.configLoader(),
				parser.New(),
				scanner.New(),
				history.New(),
				gitinfo.New(),
			)

			var results []application.SkillResult
			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}

				var batch []application.SkillResult
				if all {
					batch, err = svc.ValidateAll(cmd.Context(), path)
					if err != nil {
						return fmt.Errorf("validation failed: %w", err)
					}
				} else {
					r, err := svc.Validate(cmd.Context(), path)
					if err != nil {
						return fmt.Errorf("validation failed: %w", err)
					}
					batch = []application.SkillResult{*r}
				}

				if !noHistory {
					root := path
					if !all {
						root = application.SkillRoot(path)
					}
					if err := svc.Record(cmd.Context(), root, batch); err != nil {
						logger.G(cmd.Context()).WithError(err).Warn("could not record validation history")
					}
				}
				results = append(results, batch...)
			}

			if jsonOutput {
				if err := renderJSON(cmd, results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(r.Path, r.Report))
				}
				if len(results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No skills found.")
				}
			}

			if ciMode {
				return blockedError(results)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports as JSON")
	cmd.Flags().BoolVar(&all, "all", false, "Validate every SKILL.md under each path")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any skill is not publishable")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record results in .skillvet/history")

	return cmd
}

// blockedError lists every skill that cannot be published, or nil.
func blockedError(results []application.SkillResult) error {
	var blocked []string
	for _, r := range results {
		if r.Report.Publishable {
			continue
		}
		reason := r.Report.BlockingMessage()
		if reason == "" {
			reason = fmt.Sprintf("quality score %d is below the publish threshold", r.Report.QualityScore)
		}
		blocked = append(blocked, fmt.Sprintf("%s: %s", r.Report.Slug, reason))
	}
	if len(blocked) == 0 {
		return nil
	}
	return fmt.Errorf("%d skill(s) not publishable:\n  %s", len(blocked), strings.Join(blocked, "\n  "))
}
