// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"rowdb/internal/sql"
)

type Justification int

const (
	Unknown Justification = iota
	Left
	Right
)

// FormattingWriter renders a query result.
type FormattingWriter interface {
	Write(columnNames []string, rows []sql.Row) error
}

// New returns the writer for a -format value: "table", "csv" or "json".
func New(format string, w io.Writer) (FormattingWriter, error) {
	switch format {
	case "table":
		return NewTableWriter(w), nil
	case "csv":
		return NewCSVWriter(w, ","), nil
	case "json":
		return NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want table, csv or json)", format)
	}
}

type tableWriter struct {
	w io.Writer
}

func NewTableWriter(w io.Writer) FormattingWriter {
	return &tableWriter{w}
}

// Write formats the results as ASCII tables.
func (t *tableWriter) Write(columnNames []string, rows []sql.Row) error {
	columnWidths := make([]int, len(columnNames))
	for i, cName := range columnNames {
		columnWidths[i] = runewidth.StringWidth(cName)
	}
	justification := make([]Justification, len(columnNames))
	results := make([][]string, 0, len(rows))
	for _, r := range rows {
		if len(r) != len(columnNames) {
			return fmt.Errorf("row has %d values but there are %d column names", len(r), len(columnNames))
		}
		row := make([]string, len(r))
		for i, v := range r {
			if justification[i] == Unknown {
				justification[i] = getJustification(v)
			}
			row[i] = v.String()
			if width := runewidth.StringWidth(row[i]); width > columnWidths[i] {
				columnWidths[i] = width
			}
		}
		results = append(results, row)
	}

	writeBorder(t.w, columnWidths)
	sep := "| "
	for i, cName := range columnNames {
		io.WriteString(t.w, sep+pad(cName, columnWidths[i], Right))
		sep = " | "
	}
	io.WriteString(t.w, " |\n")
	writeBorder(t.w, columnWidths)
	for _, result := range results {
		sep = "| "
		for i, column := range result {
			io.WriteString(t.w, sep+pad(column, columnWidths[i], justification[i]))
			sep = " | "
		}
		io.WriteString(t.w, " |\n")
	}
	writeBorder(t.w, columnWidths)
	return nil
}

// pad fills s with spaces up to width display cells.
func pad(s string, width int, j Justification) string {
	fill := width - runewidth.StringWidth(s)
	if fill <= 0 {
		return s
	}
	if j == Right {
		return strings.Repeat(" ", fill) + s
	}
	return s + strings.Repeat(" ", fill)
}

func writeBorder(out io.Writer, columnWidths []int) {
	sep := "+-"
	for _, width := range columnWidths {
		io.WriteString(out, fmt.Sprintf("%s%s", sep, strings.Repeat("-", width)))
		sep = "-+-"
	}
	io.WriteString(out, "-+\n")
}

func getJustification(v sql.Value) Justification {
	if v.Kind == sql.KindInteger {
		return Right
	}
	return Left
}

type csvWriter struct {
	w         io.Writer
	delimiter string
}

func NewCSVWriter(w io.Writer, delimiter string) FormattingWriter {
	return &csvWriter{w, delimiter}
}

// Write formats the results as CSV as specified by https://tools.ietf.org/html/rfc4180.
func (c *csvWriter) Write(columnNames []string, rows []sql.Row) error {
	delim := ""
	for _, cName := range columnNames {
		str := doubleQuoteForCSV(cName, c.delimiter)
		io.WriteString(c.w, fmt.Sprintf("%s%s", delim, str))
		delim = c.delimiter
	}
	io.WriteString(c.w, "\n")
	for _, r := range rows {
		delim := ""
		for _, v := range r {
			str := doubleQuoteForCSV(v.String(), c.delimiter)
			io.WriteString(c.w, fmt.Sprintf("%s%s", delim, str))
			delim = c.delimiter
		}
		io.WriteString(c.w, "\n")
	}
	return nil
}

// doubleQuoteForCSV follows the escaping rules from
// https://tools.ietf.org/html/rfc4180. In particular, values containing
// newlines, double quotes, and the delimiter must be enclosed in double
// quotes.
func doubleQuoteForCSV(str, delimiter string) string {
	doubleQuote := strings.Contains(str, delimiter) || strings.Contains(str, "\n")
	if strings.Contains(str, "\"") {
		str = strings.ReplaceAll(str, "\"", "\"\"")
		doubleQuote = true
	}
	if doubleQuote {
		str = "\"" + str + "\""
	}
	return str
}

type jsonWriter struct {
	w io.Writer
}

func NewJSONWriter(w io.Writer) FormattingWriter {
	return &jsonWriter{w}
}

// Write formats the result as a JSON array of objects, one per row, with
// keys in column order. Integers are JSON numbers, text is JSON strings.
func (j *jsonWriter) Write(columnNames []string, rows []sql.Row) error {
	jsonColNames := make([][]byte, len(columnNames))
	for i, cName := range columnNames {
		b, err := json.Marshal(cName)
		if err != nil {
			return fmt.Errorf("marshal column name %q: %w", cName, err)
		}
		jsonColNames[i] = b
	}

	io.WriteString(j.w, "[")
	bOpen := "{"
	for _, r := range rows {
		if len(r) != len(columnNames) {
			return fmt.Errorf("row has %d values but there are %d column names", len(r), len(columnNames))
		}
		io.WriteString(j.w, bOpen)
		linestart := "\n  "
		for i, v := range r {
			str, err := toJSON(v)
			if err != nil {
				return err
			}
			io.WriteString(j.w, fmt.Sprintf("%s%s: %s", linestart, jsonColNames[i], str))
			linestart = ",\n  "
		}
		io.WriteString(j.w, "\n}")
		bOpen = ", {"
	}
	io.WriteString(j.w, "]\n")
	return nil
}

func toJSON(v sql.Value) ([]byte, error) {
	var x interface{} = v.S
	if v.Kind == sql.KindInteger {
		x = v.I64
	}
	b, err := json.Marshal(x)
	if err != nil {
		return nil, fmt.Errorf("marshal value %v: %w", v, err)
	}
	return b, nil
}
