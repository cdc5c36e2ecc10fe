package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/commands/options"
	"tableflip.dev/outline/pkg/runner/get"
	"tableflip.dev/outline/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	hideOmitted := false

	cmd := &cobra.Command{
		Use:   "get [document]",
		Short: "Print the outline of one or all documents.",
		Example: `
outline get
outline get pilot --show-id
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return documentCompletions(args), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}
			s := get.Get{
				ShowID:      io.ShowID,
				HideOmitted: hideOmitted,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			if len(args) > 0 {
				s.Name = args[0]
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVar(&hideOmitted, "hide-omitted", false, "Leave omitted scenes out.")

	topLevel.AddCommand(cmd)
}
