package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillvet/skillvet/internal/adapters/outbound/tui"
	"github.com/skillvet/skillvet/internal/application"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Run only the security rules over a file",
		Long:  "Scan any text file with the security rules. Exits 1 when an error-severity rule fires.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			result, err := application.NewScanService(opts.configLoader()).ScanFile(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderScan(result.Path, result.Checks))
			}

			if result.Summary.Errors > 0 {
				return fmt.Errorf("%d blocking security finding(s) in %s", result.Summary.Errors, args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output findings as JSON")

	return cmd
}

type ruleInfo struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func newRulesCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the security rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := application.LoadEngine(cmd.Context(), opts.configLoader(), ".")
			if err != nil {
				return err
			}

			if !jsonOutput {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(eng.Rules()))
				return nil
			}
			rules := eng.Rules()
			infos := make([]ruleInfo, 0, len(rules))
			for _, r := range rules {
				infos = append(infos, ruleInfo{ID: r.ID, Severity: r.Severity.String(), Message: r.Message})
			}
			return renderJSON(cmd, infos)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rules as JSON")

	return cmd
}
