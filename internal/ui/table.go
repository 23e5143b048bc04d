package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table renders rows of data in aligned columns.
type Table struct {
	w    *tabwriter.Writer
	rows int
}

// NewTable creates a table writer and prints the column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return &Table{w: tw}
}

// Row appends a row of values. Slices are joined with commas and empty
// values are shown as "-".
func (t *Table) Row(values ...any) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = cell(v)
	}
	t.rows++
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Len returns the number of rows written so far.
func (t *Table) Len() int { return t.rows }

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}

func cell(v any) string {
	var s string
	switch v := v.(type) {
	case []string:
		s = strings.Join(v, ",")
	case bool:
		if v {
			s = "yes"
		} else {
			s = "no"
		}
	default:
		s = fmt.Sprintf("%v", v)
	}
	if s == "" {
		return "-"
	}
	return s
}
