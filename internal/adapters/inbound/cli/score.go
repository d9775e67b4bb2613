package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillvet/skillvet/internal/adapters/outbound/history"
	"github.com/skillvet/skillvet/internal/adapters/outbound/parser"
	"github.com/skillvet/skillvet/internal/adapters/outbound/tui"
	"github.com/skillvet/skillvet/internal/application"
	"github.com/skillvet/skillvet/internal/domain"
)

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput  bool
		detail      bool
		badge       bool
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "score [path]",
		Short: "Compute a skill's quality score",
		Long:  "Score a skill from 0 to 100 on metadata completeness and instruction quality, without running the blocking checks.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if showHistory {
				entries, err := history.New().Load(application.SkillRoot(absPath))
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			svc := application.NewScoreService(opts.configLoader(), parser.New())
			result, err := svc.Score(cmd.Context(), absPath)
			if err != nil {
				return fmt.Errorf("scoring failed: %w", err)
			}

			switch {
			case jsonOutput:
				return renderJSON(cmd, result)
			case badge:
				return renderBadge(cmd, result)
			case detail:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderBreakdown(result.Slug, result.Breakdown))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %d/100  %s\n", result.Slug, result.Score, result.Grade)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output score as JSON")
	cmd.Flags().BoolVar(&detail, "detail", false, "Show the per-bucket breakdown")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output shields.io badge URL")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show validation history")

	return cmd
}

func renderBadge(cmd *cobra.Command, result *application.ScoreResult) error {
	color := domain.BadgeColor(result.Score)
	url := fmt.Sprintf("https://img.shields.io/badge/skillvet-%d%%2F100-%s", result.Score, color)
	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}
