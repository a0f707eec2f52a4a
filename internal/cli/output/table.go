package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table is a titled grid of multi-line cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Table writes t as a box-drawn table in text mode and as a pipe table in
// markdown mode. Multi-line cells become <br/>-separated in markdown.
func (r *Renderer) Table(t Table) {
	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range t.Rows {
		cells := make(table.Row, len(row))
		for i, c := range row {
			cells[i] = c
		}
		tw.AppendRow(cells)
		tw.AppendSeparator()
	}

	if r.EffectiveMode() == ModeMarkdown {
		if t.Title != "" {
			r.Println(FormatHeader(2, t.Title))
			r.Println("")
		}
		tw.RenderMarkdown()
		r.Println("")
		return
	}

	tw.SetTitle(t.Title)
	tw.SetStyle(table.StyleRounded)
	style := tw.Style()
	style.Title.Align = text.AlignCenter
	style.Format.Header = text.FormatDefault
	if r.isTTY {
		style.Color.Header = text.Colors{text.Bold}
		style.Color.Border = text.Colors{text.FgHiBlack}
		style.Color.Separator = text.Colors{text.FgHiBlack}
	}
	tw.Render()
}
