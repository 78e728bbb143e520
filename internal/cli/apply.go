package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ghpro.dev/ghpro/internal/backport"
	ghproerrors "ghpro.dev/ghpro/internal/errors"
)

// newApplyCmd creates the `backport-pr apply` command
func newApplyCmd(flags *backportFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <branch> <pr-number> [<pr-number>...]",
		Short: "Cherry-pick merged PRs onto a maintenance branch and open backport PRs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			target := args[0]
			numbers := make([]int, 0, len(args)-1)
			for _, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid PR number %q", arg)
				}
				numbers = append(numbers, n)
			}

			rt, err := setup(ctx, flags.repo, flags.verbose, true)
			if err != nil {
				return err
			}

			applier := &backport.Applier{
				Client: rt.client,
				Git:    rt.repo,
				Remote: rt.remote,
				Splog:  rt.splog,
			}

			for _, number := range numbers {
				rt.splog.Heading("Backporting PR #%d onto %s", number, target)

				result, err := applier.Apply(ctx, target, number)
				if err != nil {
					var conflict *ghproerrors.CherryPickConflictError
					if errors.As(err, &conflict) {
						rt.splog.Warn("Cherry-pick of %.8s hit a conflict; the working tree is left as-is.", conflict.SHA)
						if len(conflict.Remaining) > 0 {
							rt.splog.Warn("Still to apply after resolving:")
							for _, sha := range conflict.Remaining {
								rt.splog.Warn("  %.8s", sha)
							}
						}
						rt.splog.Tip("Resolve the conflicts, run `git cherry-pick --continue`, cherry-pick the remaining commits, then push and open the PR by hand.")
					}
					return err
				}

				rt.splog.Info("Opened %s (backport of #%d, %d commits on %s)",
					result.NewPR.HTMLURL, number, len(result.Applied), result.Branch)
			}

			return nil
		},
	}

	return cmd
}
