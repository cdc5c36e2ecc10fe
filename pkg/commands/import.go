package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/commands/options"
	"tableflip.dev/outline/pkg/runner/add"
	"tableflip.dev/outline/pkg/store"
)

func addImport(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}

	cmd := &cobra.Command{
		Use:     "import <file>",
		Aliases: []string{"add"},
		Short:   "Store a parsed outline.",
		Example: `
outline import pilot.json
outline import --name pilot - < outline.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}
			s := add.Add{
				File:        args[0],
				Name:        do.Name,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
				In:          cmd.InOrStdin(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddDocumentArgs(cmd, do)

	topLevel.AddCommand(cmd)
}
