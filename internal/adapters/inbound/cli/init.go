package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillvet/skillvet/internal/adapters/outbound/config"
	"github.com/skillvet/skillvet/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .skillvet.yaml configuration file",
		Long:  "Create a .skillvet.yaml holding the default thresholds and score weights, ready to tune.",
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

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig(domain.DefaultConfig())), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .skillvet.yaml")

	return cmd
}

func generateConfig(cfg domain.EngineConfig) string {
	var b strings.Builder

	b.WriteString("# skillvet configuration\n\n")
	b.WriteString("# A skill is publishable with no failed errors and at least this score.\n")
	fmt.Fprintf(&b, "min_publish_score: %d\n\n", cfg.MinPublishScore)

	b.WriteString("# Lengths are counted in characters; max_instructions_length is in bytes.\n")
	fmt.Fprintf(&b, "min_description_length: %d\n", cfg.MinDescriptionLength)
	fmt.Fprintf(&b, "min_instructions_length: %d\n", cfg.MinInstructionsLength)
	fmt.Fprintf(&b, "long_instructions_length: %d\n", cfg.LongInstructionsLength)
	fmt.Fprintf(&b, "trivial_instructions_length: %d\n", cfg.TrivialInstructionsLength)
	fmt.Fprintf(&b, "max_instructions_length: %d\n\n", cfg.MaxInstructionsLength)

	b.WriteString("# Schema weights may sum to at most 25, instruction weights to at most 75.\n")
	b.WriteString("weights:\n")
	for _, bucket := range domain.ScoreBuckets {
		points, _ := cfg.Weights.Points(bucket)
		fmt.Fprintf(&b, "  %s: %d\n", bucket, points)
	}

	b.WriteString("\n# categories:\n")
	for _, c := range cfg.Categories {
		fmt.Fprintf(&b, "#   - %s\n", c)
	}

	b.WriteString("\n# Host globs ('.' separated) flagged by security.suspiciousUrls.\n")
	b.WriteString("# suspicious_hosts replaces the defaults; extra_suspicious_hosts adds to them.\n")
	b.WriteString("# extra_suspicious_hosts:\n#   - \"*.exfil.example\"\n")

	return b.String()
}
