package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/commands/options"
	"tableflip.dev/outline/pkg/runner/tags"
	"tableflip.dev/outline/pkg/scene"
	"tableflip.dev/outline/pkg/store"
)

func addTags(topLevel *cobra.Command) {
	to := &options.TagOptions{}

	long := strings.Builder{}
	long.WriteString("Report the tagged elements of each scene, one page per tag type.\n\n")
	long.WriteString("Tag types:\n")
	for _, t := range scene.TagTypes() {
		long.WriteString("  " + string(t) + " (" + t.DisplayName() + ")\n")
	}

	cmd := &cobra.Command{
		Use:   "tags <document>",
		Short: "Print the tag report of a document.",
		Long:  long.String(),
		Example: `
outline tags pilot
outline tags pilot --type cast,prop --plain
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return documentCompletions(args), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}
			s := tags.Tags{
				Name:        args[0],
				Types:       to.Types,
				Plain:       to.Plain,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTagArgs(cmd, to)

	topLevel.AddCommand(cmd)
}
