package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/civicviz/reasons311/internal/model"
)

// Columns names the header fields holding the reason label and its count.
// Matching is case-insensitive, so "reason" also finds a "Reason" header.
type Columns struct {
	Reason string
	Count  string
}

// DefaultColumns matches the Analyze Boston export.
var DefaultColumns = Columns{Reason: "reason", Count: "Count"}

// RawRecord is a CSV row before its count text is coerced to a number.
type RawRecord struct {
	Reason    string
	CountText string
	Row       int
}

// Read parses a header-driven CSV. Column order does not matter and extra
// columns are ignored. Every row must have as many fields as the header.
func Read(r io.Reader, cols Columns) ([]RawRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading header: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	colReason, err := findColumn(header, cols.Reason)
	if err != nil {
		return nil, err
	}
	colCount, err := findColumn(header, cols.Count)
	if err != nil {
		return nil, err
	}

	var rows []RawRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, RawRecord{
			Reason:    rec[colReason],
			CountText: rec[colCount],
			Row:       line,
		})
	}
	return rows, nil
}

// Write emits a dataset as CSV using the given header names.
func Write(w io.Writer, data model.Dataset, cols Columns) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{cols.Reason, cols.Count}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range data {
		if err := cw.Write([]string{rec.Reason, rec.CountText()}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func findColumn(header []string, name string) (int, error) {
	want := normalizeHeader(name)
	for i, h := range header {
		if normalizeHeader(h) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w %q in header %v", ErrMissingColumn, name, header)
}

func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.TrimSpace(s))
}
