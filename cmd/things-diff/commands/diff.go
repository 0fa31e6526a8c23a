package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goblinsan/things-diff/pkg/engine"
	"github.com/goblinsan/things-diff/pkg/github"
	"github.com/goblinsan/things-diff/pkg/snapshot"
	"github.com/goblinsan/things-diff/pkg/tasks"
	"github.com/goblinsan/things-diff/pkg/types"
	"github.com/spf13/cobra"
)

// errNotClear is returned by diff --exit-code when any project has differences.
var errNotClear = errors.New("issues and tasks differ")

// lineSource produces raw task lines.
type lineSource interface {
	Lines(ctx context.Context) ([]string, error)
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Bool("ignore-filter", false, "Do not filter issues by milestone")
	diffCmd.Flags().Bool("fetch", false, "Fetch issues before comparing")
	diffCmd.Flags().Bool("json", false, "Print the report as JSON")
	diffCmd.Flags().Bool("exit-code", false, "Fail when any project is not clear")
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the fetched issues with the Things tasks",
	Long: `Compare the issues in the data file with the tasks listed by the task command.
For every project, print the issues that have no task and the tasks whose issue
is not among the (milestone filtered) issues, or "Clear!" when both agree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ignoreFilter, _ := cmd.Flags().GetBool("ignore-filter")
		doFetch, _ := cmd.Flags().GetBool("fetch")
		asJSON, _ := cmd.Flags().GetBool("json")
		exitCode, _ := cmd.Flags().GetBool("exit-code")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if doFetch {
			if err := runFetch(ctx, github.NewClient(cfg.Token), cfg, os.Stdout); err != nil {
				return err
			}
		}

		source := tasks.NewSource(cfg.TaskCommand, logger)
		report, err := runDiff(ctx, cfg, source, engine.Options{IgnoreFilter: ignoreFilter})
		if err != nil {
			return err
		}

		if err := writeReport(os.Stdout, os.Stderr, report, asJSON); err != nil {
			return err
		}
		return checkClear(report, exitCode)
	},
}

// checkClear returns errNotClear when exitCode is requested and the report
// has differences.
func checkClear(report *engine.Report, exitCode bool) error {
	if exitCode && !report.Clear() {
		return errNotClear
	}
	return nil
}

// writeReport prints the report to out and its one-line summary to errOut.
func writeReport(out, errOut io.Writer, report *engine.Report, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if err := report.WriteText(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintln(errOut, report)
	return nil
}

// runDiff loads the snapshot, parses the task lines and reconciles every project.
func runDiff(ctx context.Context, cfg *types.Config, source lineSource, opts engine.Options) (*engine.Report, error) {
	snap, err := snapshot.Load(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	lines, err := source.Lines(ctx)
	if err != nil {
		return nil, err
	}
	parsed, dups := tasks.Parse(lines, cfg.ProjectNames(), logger)

	report := engine.Diff(snap, parsed, cfg.Projects, opts)
	for _, d := range dups {
		report.Warnings = append(report.Warnings, d.String())
	}
	return report, nil
}
