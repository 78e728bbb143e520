package cli

import (
	"github.com/spf13/cobra"

	"ghpro.dev/ghpro/internal/backport"
)

// newTodoCmd creates the `backport-pr todo` command
func newTodoCmd(flags *backportFlags) *cobra.Command {
	var (
		milestone string
		branch    string
		since     string
	)

	cmd := &cobra.Command{
		Use:   "todo --milestone <name>",
		Short: "List merged PRs marked for backport that have not been applied yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// The log policy reads local history, the others only need the API
			needRepo := false
			rt, err := setup(ctx, flags.repo, flags.verbose, needRepo)
			if err != nil {
				return err
			}

			var log backport.LogReader
			if rt.repo != nil {
				log = rt.repo
			}
			policy, err := backport.NewPolicy(rt.cfg.CompletionPolicy, rt.client, log, since)
			if err != nil {
				return err
			}

			tracker := &backport.Tracker{
				Client: rt.client,
				Policy: policy,
				Splog:  rt.splog,
			}

			items, err := tracker.Todo(ctx, milestone, branch)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				rt.splog.Info("Everything appears up-to-date for milestone %s.", milestone)
				return nil
			}

			rt.splog.Heading("PRs to backport for milestone %s:", milestone)
			for _, item := range items {
				rt.splog.Info("  #%d -> %s  %s", item.Number, item.Branch, item.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&milestone, "milestone", "m", "", "milestone to check for pending backports")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "target branch; default derived from the backport label or the milestone major version")
	cmd.Flags().StringVar(&since, "since", "", "tag bounding the history scan for the log completion policy; `git describe` is used by default")
	_ = cmd.MarkFlagRequired("milestone")

	return cmd
}
