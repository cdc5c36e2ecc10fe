package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/runner/ui"
	"tableflip.dev/outline/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui [document]",
		Short: "open the text-based user interface",
		Example: `
outline ui pilot
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return documentCompletions(args), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			i := ui.UI{Persistence: p}
			if len(args) > 0 {
				i.Name = args[0]
			}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
