package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	portfolio "github.com/goliatone/go-portfolio"
)

func newBuildCommand(opts *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the content directory once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compile in memory and report without writing")
	return cmd
}

func runBuild(cmd *cobra.Command, opts *options, dryRun bool) error {
	module, err := opts.module()
	if err != nil {
		return err
	}
	report, err := module.Compile(cmd.Context(), dryRun)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func printReport(out io.Writer, report *portfolio.Report) {
	if report == nil {
		return
	}
	mode := "wrote"
	if report.DryRun {
		mode = "would write"
	}
	fmt.Fprintf(out, "%s %d posts, %d projects, %d files in %s\n",
		mode, report.Posts, report.Projects, len(report.Artifacts), report.Duration.Round(time.Millisecond))
	for _, outcome := range report.Outcomes {
		line := fmt.Sprintf("  %-9s %s", outcome.Step, outcome.Status)
		if outcome.Reason != "" {
			line += ": " + outcome.Reason
		}
		fmt.Fprintln(out, line)
	}
	for _, issue := range report.Skipped {
		fmt.Fprintf(out, "  skipped %s: %s\n", issue.Source, issue.Reason)
	}
	for _, path := range report.Pruned {
		fmt.Fprintf(out, "  removed %s\n", path)
	}
}
