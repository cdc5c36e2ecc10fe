// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// DocumentOptions names the stored document a command writes.
type DocumentOptions struct {
	Name string
}

// AddDocumentArgs registers --name.
func AddDocumentArgs(cmd *cobra.Command, o *DocumentOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"Document name. Defaults to the name in the file, then the file name.")
}

// TagOptions filters the tag report.
type TagOptions struct {
	Types []string
	Plain bool
}

func AddTagArgs(cmd *cobra.Command, o *TagOptions) {
	cmd.Flags().StringSliceVarP(&o.Types, "type", "t", nil,
		"Tag types to report, e.g. cast,prop. Defaults to all.")
	cmd.Flags().BoolVar(&o.Plain, "plain", false,
		"Print plain text with a form feed between pages.")
}
