package commands

import (
	"flag"
	"fmt"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/outline/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "outline",
		Short: base.Wrap80("Keep screenplay outline views in step with the script."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its flags from flag.CommandLine; cobra has already
			// parsed them into it.
			if err := flag.CommandLine.Parse(nil); err != nil {
				return fmt.Errorf("parsing log flags: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addImport(topLevel)
	addGet(topLevel)
	addSync(topLevel)
	addWatch(topLevel)
	addUI(topLevel)
	addTags(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
