package ui

import "strings"

// Table renders rows as space-aligned columns, without borders. Column
// widths track the widest cell seen.
type Table struct {
	rows      [][]string
	colWidths []int
	padding   int
}

// NewTable creates a table with the given number of columns.
func NewTable(cols int) *Table {
	return &Table{colWidths: make([]int, cols), padding: 2}
}

// AddRow appends a row. Extra cells beyond the column count are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(row) && i < len(cells); i++ {
		row[i] = cells[i]
		if w := len([]rune(cells[i])); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the table. The last column is never padded.
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	gap := strings.Repeat(" ", t.padding)
	var sb strings.Builder
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(gap)
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-len([]rune(cell))))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// List renders indented bullet items.
type List struct {
	items  []string
	indent string
	bullet string
}

// NewList creates a list with two-space indent and a bullet marker.
func NewList() *List {
	return &List{indent: "  ", bullet: "•"}
}

// Add appends an item.
func (l *List) Add(item string) {
	l.items = append(l.items, item)
}

// String renders the list.
func (l *List) String() string {
	var sb strings.Builder
	for _, item := range l.items {
		sb.WriteString(l.indent)
		sb.WriteString(l.bullet)
		sb.WriteString(" ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}
