// Package export serializes extraction results for download and batch
// output, as CSV for spreadsheet import and XLSX for direct viewing.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"invext/internal/domain"
	"invext/internal/engine"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one exported document: its name plus the parse outcome.
type Row struct {
	Name   string
	Result engine.Result
}

// columns defines the header row: three metadata columns followed by
// every extractable field in canonical order.
var columns = buildColumns()

func buildColumns() []string {
	cols := []string{"Document", "Strategy", "Confidence", "Needs Review"}
	for _, f := range domain.Fields {
		cols = append(cols, string(f))
	}
	return cols
}

// Writer wraps csv.Writer for exporting extraction results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts a batch of results to CSV rows and writes them.
func (w *Writer) WriteRows(rows []Row) error {
	for i := range rows {
		if err := w.csv.Write(toRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// toRecord converts one result to a record. Unresolved fields export as
// the sentinel, not as blanks, so a consumer can tell "not extracted"
// from "extracted empty" (which cannot occur, but CSV hides that).
func toRecord(r *Row) []string {
	rec := make([]string, 0, len(columns))
	rec = append(rec,
		r.Name,
		string(r.Result.Source),
		strconv.FormatFloat(r.Result.Confidence, 'f', 2, 64),
		formatBool(r.Result.NeedsReview),
	)
	for _, f := range domain.Fields {
		v := r.Result.Fields[f]
		if v == "" {
			v = domain.Unresolved
		}
		rec = append(rec, v)
	}
	return rec
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
