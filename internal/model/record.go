package model

import (
	"math"
	"strconv"
)

// Record is one row of the reasons dataset.
type Record struct {
	Reason string
	Count  float64 // NaN when the source text was not numeric
	Row    int     // 1-based CSV line, 0 if not loaded from CSV
}

// Dataset is the full in-memory sequence of records in load order.
type Dataset []Record

// Valid reports whether the record's count is a finite number.
func (r Record) Valid() bool {
	return !math.IsNaN(r.Count) && !math.IsInf(r.Count, 0)
}

// CountText formats the count the way it is shown on a bar label:
// shortest decimal form, no grouping ("120", "2.5", "NaN").
func (r Record) CountText() string {
	return FormatCount(r.Count)
}

// FormatCount is the label formatter shared by every render target.
func FormatCount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Reasons returns the reason labels in dataset order.
func (d Dataset) Reasons() []string {
	out := make([]string, len(d))
	for i, r := range d {
		out[i] = r.Reason
	}
	return out
}

// MaxCount returns the largest finite count, ignoring NaN records.
// ok is false when no record has a usable count.
func (d Dataset) MaxCount() (v float64, ok bool) {
	for _, r := range d {
		if !r.Valid() {
			continue
		}
		if !ok || r.Count > v {
			v = r.Count
			ok = true
		}
	}
	return v, ok
}
