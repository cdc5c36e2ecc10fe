package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/outline/pkg/commands/options"
	"tableflip.dev/outline/pkg/runner/update"
	"tableflip.dev/outline/pkg/store"
)

func addSync(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}
	io := &options.IDOptions{}
	dryRun := false

	cmd := &cobra.Command{
		Use:   "sync <file>",
		Short: "Replace a stored outline and print what changed.",
		Long: base.Wrap80(`Reads a newly parsed outline and diffs it by scene ID against the stored one.
Removed, inserted, moved and reloaded rows are printed the way a list view
would receive them.`),
		Example: `
outline sync pilot.json
outline sync --dry-run --name pilot draft.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}
			s := update.Update{
				File:        args[0],
				Name:        do.Name,
				DryRun:      dryRun,
				ShowID:      io.ShowID,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
				In:          cmd.InOrStdin(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddDocumentArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the changes without storing.")

	topLevel.AddCommand(cmd)
}
