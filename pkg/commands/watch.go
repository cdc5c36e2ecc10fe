package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/commands/options"
	"tableflip.dev/outline/pkg/runner/watch"
	"tableflip.dev/outline/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch [document]",
		Short: "Print outline changes as documents are stored.",
		Example: `
outline watch
outline watch pilot
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
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := watch.Watch{
				ShowID:      io.ShowID,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			if len(args) > 0 {
				s.Name = args[0]
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
