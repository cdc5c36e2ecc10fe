package printers

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/outline/pkg/outline/diff"
	"tableflip.dev/outline/pkg/outline/viewmodel"
)

// View prints what a synchronizer applies: the full table on reload and one
// line per operation on incremental updates.
type View struct {
	Printer *PrettyPrint
	Name    string
}

// ApplyChanges implements synchronizer.View.
func (v *View) ApplyChanges(cs diff.Changeset, items []viewmodel.Item, _ bool) {
	pp := v.Printer
	_, _ = pp.style(color.Faint).Fprintf(pp.out(), "%s: %s\n", v.Name, cs)
	pp.Changes(cs, items)
}

// ReloadData implements synchronizer.View.
func (v *View) ReloadData(items []viewmodel.Item) {
	pp := v.Printer
	pp.TitleWithCount(v.Name, len(items))
	pp.Outline(items...)
}

func (v *View) String() string {
	return fmt.Sprintf("printers.View(%s)", v.Name)
}
