package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"tableflip.dev/outline/pkg/outline/diff"
	"tableflip.dev/outline/pkg/outline/viewmodel"
	"tableflip.dev/outline/pkg/tagreport"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer

	colored bool
}

// New returns a printer writing to out. Color is only used when out is a
// terminal.
func New(out io.Writer, showID bool) *PrettyPrint {
	if out == nil {
		out = color.Output
	}
	return &PrettyPrint{ShowID: showID, Out: out, colored: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	if w == color.Output {
		return !color.NoColor
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if !pp.colored {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	_, _ = pp.style(color.Bold, color.Underline).Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := pp.style(color.Bold, color.Underline)
	c := pp.style(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " scene")
	default:
		_, _ = c.Fprintln(pp.out(), " scenes")
	}
}

// Outline prints the rows as a table.
func (pp *PrettyPrint) Outline(items ...viewmodel.Item) {
	if len(items) == 0 {
		_, _ = pp.style(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
		return
	}

	bold := pp.style(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	header := []interface{}{bold.Sprint("#"), bold.Sprint("Scene"), bold.Sprint("Color"), bold.Sprint("Range")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	y := pp.style(color.FgHiYellow, color.Italic, color.Faint)
	for _, it := range items {
		heading := strings.TrimSpace(it.String)
		if it.Selected {
			heading = pp.style(color.ReverseVideo).Sprint(heading)
		}
		row := []interface{}{it.SceneNumber, heading, pp.colorName(it.Color), it.Range.String()}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(it.ID)}, row...)
		}
		tbl.AddRow(row...)
		for _, line := range it.Synopsis {
			extra := []interface{}{"", pp.style(color.Faint).Sprint("  " + line), "", ""}
			if pp.ShowID {
				extra = append([]interface{}{""}, extra...)
			}
			tbl.AddRow(extra...)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

var sceneColors = map[string]color.Attribute{
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"purple":  color.FgMagenta,
	"pink":    color.FgHiMagenta,
	"cyan":    color.FgCyan,
	"orange":  color.FgHiYellow,
	"brown":   color.FgYellow,
	"gray":    color.FgHiBlack,
}

func (pp *PrettyPrint) colorName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if attr, ok := sceneColors[strings.ToLower(name)]; ok {
		return pp.style(attr).Sprint(name)
	}
	return name
}

// Changes prints one line per operation in cs. items is the snapshot the
// changeset produced.
func (pp *PrettyPrint) Changes(cs diff.Changeset, items []viewmodel.Item) {
	if cs.Empty() {
		_, _ = pp.style(color.Faint, color.Italic).Fprintln(pp.out(), " no changes")
		return
	}
	label := func(id string, index int) string {
		if index >= 0 && index < len(items) && items[index].ID == id {
			return items[index].Title()
		}
		return id
	}

	red := pp.style(color.FgRed)
	green := pp.style(color.FgGreen)
	cyan := pp.style(color.FgCyan)
	yellow := pp.style(color.FgYellow)
	for _, op := range cs.Removes {
		_, _ = red.Fprintf(pp.out(), "- %3d  %s\n", op.Index, op.ID)
	}
	for _, op := range cs.Inserts {
		_, _ = green.Fprintf(pp.out(), "+ %3d  %s\n", op.Index, label(op.ID, op.Index))
	}
	for _, mv := range cs.Moves {
		_, _ = cyan.Fprintf(pp.out(), "> %3d  %s (from %d)\n", mv.To, label(mv.ID, mv.To), mv.From)
	}
	for _, op := range cs.Reloads {
		_, _ = yellow.Fprintf(pp.out(), "~ %3d  %s\n", op.Index, label(op.ID, op.Index))
	}
}

// TagReport prints the report, one titled section per tag type.
func (pp *PrettyPrint) TagReport(report tagreport.Report) {
	if report.Empty() {
		_, _ = pp.style(color.Faint, color.Italic).Fprint(pp.out(), " no tags\n\n")
		return
	}
	heading := pp.style(color.Bold)
	for _, page := range report.Pages {
		pp.Title(page.Header())
		for _, listing := range page.Listings {
			_, _ = heading.Fprintln(pp.out(), listing.Title())
			for _, tag := range listing.Tags {
				_, _ = fmt.Fprintf(pp.out(), "  • %s\n", tag)
			}
		}
		pp.NewLine()
	}
}
