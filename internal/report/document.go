// Package report renders command results as plain text, lipgloss-styled
// text or JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Field is one labelled value.
type Field struct {
	Label string
	Value string
}

// Section is a titled list of fields.
type Section struct {
	Title  string
	Fields []Field
}

// Add appends a field and returns the section for chaining.
func (s *Section) Add(label, format string, args ...any) *Section {
	s.Fields = append(s.Fields, Field{Label: label, Value: fmt.Sprintf(format, args...)})
	return s
}

// Table is a titled grid.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Document is everything one command prints.
type Document struct {
	Title    string
	Sections []Section
	Tables   []Table
	Notes    []string
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	noteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("244"))
)

// Write renders doc, styled or plain.
func Write(w io.Writer, doc Document, styled bool) error {
	if styled {
		return WriteStyled(w, doc)
	}
	return WritePlain(w, doc)
}

// WritePlain renders doc as aligned text.
func WritePlain(w io.Writer, doc Document) error {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title + "\n")
		b.WriteString(strings.Repeat("─", runeWidth(doc.Title)) + "\n")
	}
	for _, s := range doc.Sections {
		b.WriteString("\n")
		if s.Title != "" {
			b.WriteString(s.Title + "\n")
		}
		width := labelWidth(s.Fields)
		for _, f := range s.Fields {
			fmt.Fprintf(&b, "  %s%s  %s\n", f.Label, strings.Repeat(" ", width-runeWidth(f.Label)), f.Value)
		}
	}
	for _, t := range doc.Tables {
		b.WriteString("\n")
		writePlainTable(&b, t)
	}
	for _, n := range doc.Notes {
		b.WriteString("\n" + n + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePlainTable(b *strings.Builder, t Table) {
	if t.Title != "" {
		b.WriteString(t.Title + "\n")
	}
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runeWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && runeWidth(cell) > widths[i] {
				widths[i] = runeWidth(cell)
			}
		}
	}
	line := func(cells []string) {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = cell + strings.Repeat(" ", widths[i]-runeWidth(cell))
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
	}
	line(t.Headers)
	total := 0
	for _, wd := range widths {
		total += wd
	}
	b.WriteString(strings.Repeat("─", total+2*(len(widths)-1)) + "\n")
	if len(t.Rows) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, row := range t.Rows {
		line(row)
	}
}

// WriteStyled renders doc with lipgloss colors and bordered tables.
func WriteStyled(w io.Writer, doc Document) error {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(titleStyle.Render(doc.Title) + "\n")
	}
	for _, s := range doc.Sections {
		b.WriteString("\n")
		if s.Title != "" {
			b.WriteString(sectionStyle.Render(s.Title) + "\n")
		}
		width := labelWidth(s.Fields)
		for _, f := range s.Fields {
			label := labelStyle.Width(width).Render(f.Label)
			b.WriteString("  " + label + "  " + valueStyle.Render(f.Value) + "\n")
		}
	}
	for _, t := range doc.Tables {
		b.WriteString("\n")
		if t.Title != "" {
			b.WriteString(sectionStyle.Render(t.Title) + "\n")
		}
		if len(t.Rows) == 0 {
			b.WriteString(noteStyle.Render("(none)") + "\n")
			continue
		}
		tbl := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(labelStyle).
			Headers(t.Headers...).
			Rows(t.Rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		b.WriteString(tbl.String() + "\n")
	}
	for _, n := range doc.Notes {
		b.WriteString("\n" + noteStyle.Render(n) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func labelWidth(fields []Field) int {
	w := 0
	for _, f := range fields {
		if n := runeWidth(f.Label); n > w {
			w = n
		}
	}
	return w
}

func runeWidth(s string) int { return lipgloss.Width(s) }
