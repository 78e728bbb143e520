package cli

import (
	"github.com/spf13/cobra"
)

// backportFlags are shared by the todo and apply subcommands
type backportFlags struct {
	repo    string
	verbose bool
}

// NewBackportRootCmd creates the root command for the backport-pr binary
func NewBackportRootCmd(version string) *cobra.Command {
	flags := &backportFlags{}

	cmd := &cobra.Command{
		Use:     "backport-pr",
		Short:   "Track and apply backports of merged pull requests to maintenance branches",
		Version: version,
	}

	cmd.PersistentFlags().StringVarP(&flags.repo, "repo", "R", "", "GitHub project as owner/name; guessed from the local clone when omitted")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newTodoCmd(flags))
	cmd.AddCommand(newApplyCmd(flags))

	cmd.SilenceUsage = true

	return cmd
}
