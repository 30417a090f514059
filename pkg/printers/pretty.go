package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// PrettyPrint writes titled tables for the terminal.
type PrettyPrint struct {
	Out   io.Writer
	color bool
}

// New returns a printer writing to out. Colour is enabled only when out is a
// terminal and NO_COLOR is unset.
func New(out io.Writer) *PrettyPrint {
	return &PrettyPrint{Out: out, color: colorful(out)}
}

func colorful(out io.Writer) bool {
	if termenv.EnvNoColor() {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (pp *PrettyPrint) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if pp.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out)
}

func (pp *PrettyPrint) Title(title string) {
	_, _ = pp.style(color.Bold, color.Underline).Fprintln(pp.Out, title)
}

// TitleWithCount prints "title - n noun".
func (pp *PrettyPrint) TitleWithCount(title string, count int, singular, plural string) {
	_, _ = pp.style(color.Bold, color.Underline).Fprint(pp.Out, title)
	noun := plural
	if count == 1 {
		noun = singular
	}
	_, _ = pp.style(color.Faint).Fprintf(pp.Out, " - %d %s\n", count, noun)
}

// Table prints headers and rows aligned in columns. Each row starts with its
// id.
func (pp *PrettyPrint) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		_, _ = pp.style(color.Faint, color.Italic).Fprint(pp.Out, " none\n\n")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.Wrap = false

	head := make([]interface{}, len(headers))
	bold := pp.style(color.Bold)
	for i, h := range headers {
		head[i] = bold.Sprint(h)
	}
	tbl.AddRow(head...)

	id := pp.style(color.FgHiYellow, color.Faint)
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			if i == 0 {
				cells[i] = id.Sprint(c)
			} else {
				cells[i] = c
			}
		}
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// JSON writes v as indented JSON.
func JSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
