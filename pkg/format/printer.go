package format

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis marks truncated rows and lines.
const Ellipsis = "..."

// Unlimited disables the row limit.
const Unlimited = 0

// Printer accumulates lines and renders them with a row limit and a line
// width limit.
//
// Row limit: once the line count reaches maxRows, the first maxRows+1 lines
// are kept followed by an Ellipsis line. Input that already ends with an
// Ellipsis line is treated as trimmed, so printing output again yields the
// same text.
//
// Width limit: lines longer than maxWidth runes are cut and suffixed with
// Ellipsis. The cut happens at maxWidth-3 runes, or just after the first ':'
// when that comes later, so a field name is never truncated. The width limit
// is therefore soft for names longer than maxWidth-4 runes.
type Printer struct {
	maxRows  int
	maxWidth int
	lines    []string
}

// NewPrinter creates a printer. maxRows of Unlimited disables the row limit.
func NewPrinter(maxRows, maxWidth int) *Printer {
	return &Printer{maxRows: maxRows, maxWidth: maxWidth}
}

// Line appends a line. Embedded newlines start new lines.
func (p *Printer) Line(s string) {
	p.lines = append(p.lines, strings.Split(s, "\n")...)
}

// Lines returns the rendered lines.
func (p *Printer) Lines() []string {
	rows := p.limitRows(p.lines)
	out := make([]string, len(rows))
	for i, line := range rows {
		out[i] = p.trim(line)
	}
	return out
}

// String returns the rendered lines joined by newlines.
func (p *Printer) String() string {
	return strings.Join(p.Lines(), "\n")
}

func (p *Printer) limitRows(lines []string) []string {
	if p.maxRows == Unlimited {
		return lines
	}
	truncated := false
	if n := len(lines); n > 0 && lines[n-1] == Ellipsis {
		lines, truncated = lines[:n-1], true
	}
	if !truncated && len(lines) < p.maxRows {
		return lines
	}
	keep := min(len(lines), p.maxRows+1)
	out := make([]string, 0, keep+1)
	out = append(out, lines[:keep]...)
	return append(out, Ellipsis)
}

func (p *Printer) trim(line string) string {
	if p.maxWidth <= 0 || utf8.RuneCountInString(line) <= p.maxWidth {
		return line
	}
	runes := []rune(line)
	cut := max(p.maxWidth-len(Ellipsis), 0)
	if colon := strings.IndexRune(line, ':'); colon >= 0 {
		cut = max(cut, utf8.RuneCountInString(line[:colon])+1)
	}
	if cut >= len(runes) {
		return line
	}
	return string(runes[:cut]) + Ellipsis
}

// PresentLines renders lines with the given limits. It is the functional form of
// Printer.
func PresentLines(lines []string, maxRows, maxWidth int) string {
	p := NewPrinter(maxRows, maxWidth)
	for _, l := range lines {
		p.Line(l)
	}
	return p.String()
}
