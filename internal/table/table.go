// Package table holds the tabular result shared by database queries and CSV
// loading, and renders it as text, CSV, JSON or YAML.
package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Table is an ordered set of named columns and rows of cell values.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row. The row must have one cell per column.
func (t *Table) Append(row ...any) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns every value of the named column.
func (t *Table) Column(name string) ([]any, error) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no column named %q", name)
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// WriteText renders the table as aligned, tab-separated columns.
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	writeRow(tw, t.Columns)
	for _, row := range t.Rows {
		writeRow(tw, cells(row))
	}
	return tw.Flush()
}

// WriteCSV renders the table as CSV with a header record.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(cells(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON renders the table as an indented JSON array of objects whose
// keys follow column order.
func (t *Table) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.records())
}

// WriteYAML renders the table as a YAML sequence of mappings whose keys
// follow column order.
func (t *Table) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.records()); err != nil {
		return err
	}
	return enc.Close()
}

// Write renders the table in the named format: text, csv, json or yaml.
func (t *Table) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		return t.WriteText(w)
	case "csv":
		return t.WriteCSV(w)
	case "json":
		return t.WriteJSON(w)
	case "yaml":
		return t.WriteYAML(w)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// record is one row that marshals as an object keyed by column name.
type record struct {
	columns []string
	values  []any
}

func (t *Table) records() []record {
	out := make([]record, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = record{columns: t.Columns, values: row}
	}
	return out
}

func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, c := range r.columns {
		value := &yaml.Node{}
		if err := value.Encode(r.values[i]); err != nil {
			return nil, fmt.Errorf("column %q: %w", c, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

func writeRow(w io.Writer, values []string) {
	for i, v := range values {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, v)
	}
	fmt.Fprintln(w)
}

func cells(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			out[i] = ""
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
