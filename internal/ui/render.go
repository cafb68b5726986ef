// Package ui renders command results as JSON, plain lines, or tables.
package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// Mode selects the output format.
type Mode int

const (
	ModeTable Mode = iota
	ModePlain
	ModeJSON
)

// Renderer writes results to Out in the selected Mode.
type Renderer struct {
	Out        io.Writer
	Mode       Mode
	DateFormat string

	// Now defaults to time.Now. Its location is the display time zone.
	Now func() time.Time
}

// Field is one named value of a record, in wire order.
type Field struct {
	Name  string
	Value any
}

// JSON writes v as indented JSON regardless of Mode.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Messagef prints a human readable status line. It is suppressed in JSON
// mode so that stdout stays machine readable.
func (r *Renderer) Messagef(format string, args ...any) {
	if r.Mode == ModeJSON {
		return
	}
	fmt.Fprintf(r.Out, format+"\n", args...)
}

// Record renders a single result. plain is the line printed in plain mode;
// an empty line prints nothing.
func (r *Renderer) Record(v any, plain string) error {
	switch r.Mode {
	case ModeJSON:
		return r.JSON(v)
	case ModePlain:
		if plain != "" {
			fmt.Fprintln(r.Out, plain)
		}
		return nil
	}

	fields, err := Fields(v)
	if err != nil {
		return err
	}
	for i := range fields {
		fields[i].Name = Label(fields[i].Name)
	}
	r.FieldTable(fields)
	return nil
}

// FieldTable prints right aligned names next to their values.
func (r *Renderer) FieldTable(fields []Field) {
	width := 0
	for _, f := range fields {
		width = max(width, utf8.RuneCountInString(f.Name))
	}
	for _, f := range fields {
		fmt.Fprintf(r.Out, "%s  %s\n", padLeft(f.Name, width), r.FormatValue(f.Value))
	}
}

// List renders a collection. columns names the fields shown in table mode.
func List[T any](r *Renderer, items []T, columns []string, plain func(T) string) error {
	switch r.Mode {
	case ModeJSON:
		return r.JSON(items)
	case ModePlain:
		for _, item := range items {
			if line := plain(item); line != "" {
				fmt.Fprintln(r.Out, line)
			}
		}
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		fields, err := Fields(item)
		if err != nil {
			return err
		}
		byName := make(map[string]any, len(fields))
		for _, f := range fields {
			byName[f.Name] = f.Value
		}
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = r.FormatValue(byName[col])
		}
		rows = append(rows, row)
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = strcase.ToScreamingDelimited(col, ' ', "", true)
	}
	r.table(headers, rows)
	return nil
}

func (r *Renderer) table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = padRight(c, widths[i])
		}
		fmt.Fprintln(r.Out, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(headers)
	dashes := make([]string, len(headers))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	line(dashes)
	for _, row := range rows {
		line(row)
	}
}

// FormatValue turns a decoded JSON value into a table cell. Strings that
// look like dates are rendered with DateFormat.
func (r *Renderer) FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if r.DateFormat != "" {
			if out, ok := FormatDate(val, r.DateFormat, r.now()); ok {
				return out
			}
		}
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return val.String()
	}
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(out)
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Label turns a wire field name such as "document_count" into
// "Document Count".
func Label(name string) string {
	words := strings.Fields(strcase.ToDelimited(name, ' '))
	for i, w := range words {
		if w == "id" {
			words[i] = "ID"
			continue
		}
		words[i] = strcase.ToCamel(w)
	}
	return strings.Join(words, " ")
}

// Fields returns the top level fields of v in the order its JSON encoding
// lists them. Values are decoded JSON (numbers as json.Number).
func Fields(v any) ([]Field, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		return []Field{{Name: "result", Value: value}}, nil
	}

	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		fields = append(fields, Field{Name: keyTok.(string), Value: value})
	}
	return fields, nil
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s))) + s
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s)))
}
