package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillvet/skillvet/internal/adapters/outbound/config"
	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	logLevel   string
	logFormat  string
	configPath string
}

// configLoader returns the loader for --config, or the per-root
// .skillvet.yaml lookup when the flag is unset.
func (o *rootOptions) configLoader() domain.ConfigLoader {
	if o.configPath != "" {
		return config.NewWithPath(o.configPath)
	}
	return config.New()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "skillvet",
		Short: "Vet agent skills before they ship",
		Long: "skillvet validates SKILL.md submissions: schema, content hygiene, markdown structure " +
			"and security heuristics, plus a 0-100 quality score that gates publication.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.SetLogLevel(opts.logLevel); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			logger.SetLogFormat(opts.logFormat)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a .skillvet.yaml (defaults to the one in the skill root)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newScoreCmd(opts))
	cmd.AddCommand(newScanCmd(opts))
	cmd.AddCommand(newRulesCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show skillvet version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "skillvet %s (%s)\n", version, commit)
			return nil
		},
	}
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
