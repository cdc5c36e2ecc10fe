package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(outline completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(outline completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// documentCompletions offers stored document names for the first argument.
func documentCompletions(args []string) []string {
	if len(args) > 0 {
		return nil
	}
	p, err := store.Load(nil)
	if err != nil {
		return nil
	}
	return p.Documents(context.Background())
}
