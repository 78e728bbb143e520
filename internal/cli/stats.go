package cli

import (
	"github.com/spf13/cobra"

	"ghpro.dev/ghpro/internal/stats"
)

// NewStatsRootCmd creates the root command for the github-stats binary
func NewStatsRootCmd(version string) *cobra.Command {
	var (
		milestone string
		repoFlag  string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:     "github-stats --milestone <name> [--repo <owner/name>]",
		Short:   "Summarize merged PRs, closed issues and contributors for a release milestone",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := setup(ctx, repoFlag, verbose, false)
			if err != nil {
				return err
			}

			report, err := stats.Collect(ctx, rt.client, milestone)
			if err != nil {
				return err
			}

			stats.Render(rt.splog, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&milestone, "milestone", "m", "", "milestone to report on (e.g. 4.3)")
	cmd.Flags().StringVarP(&repoFlag, "repo", "R", "", "GitHub project as owner/name; guessed from the local clone when omitted")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("milestone")

	cmd.SilenceUsage = true

	return cmd
}
