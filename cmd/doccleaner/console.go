package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"doccleaner/internal/preflight"
)

// console writes command output. Colour is applied only when out is a terminal.
type console struct {
	out   io.Writer
	color bool
}

func newConsole(out io.Writer) *console {
	color := false
	if file, ok := out.(*os.File); ok {
		fd := file.Fd()
		color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &console{out: out, color: color}
}

// table renders a titled rounded table. rightAligned lists 1-based column
// numbers holding counts.
func (c *console) table(title string, header table.Row, rows []table.Row, rightAligned ...int) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle("%s", title)
	}
	if c.color {
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgBlue}
		tw.Style().Title.Colors = text.Colors{text.Bold, text.FgBlue}
	}
	tw.AppendHeader(header)
	tw.AppendRows(rows)

	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, number := range rightAligned {
		configs = append(configs, table.ColumnConfig{Number: number, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	fmt.Fprintln(c.out, tw.Render())
}

// checks renders preflight results as a Check/Status/Detail table.
func (c *console) checks(title string, results []preflight.Result) {
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, table.Row{r.Name, c.checkStatus(r), r.Detail})
	}
	c.table(title, table.Row{"Check", "Status", "Detail"}, rows)
}

// checkStatus labels a result: failed required checks block a run, failed
// advisory checks only warn.
func (c *console) checkStatus(r preflight.Result) string {
	label, colors := "OK", text.Colors{text.FgGreen}
	switch {
	case r.Passed:
	case r.Required:
		label, colors = "FAIL", text.Colors{text.FgRed}
	default:
		label, colors = "WARN", text.Colors{text.FgYellow}
	}
	if !c.color {
		return label
	}
	return colors.Sprint(label)
}

func (c *console) json(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
