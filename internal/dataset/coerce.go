package dataset

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/civicviz/reasons311/internal/model"
)

// Coerce converts raw rows into a Dataset, parsing each count.
// It never fails: unparsable counts become NaN.
func Coerce(rows []RawRecord) model.Dataset {
	data := make(model.Dataset, len(rows))
	for i, raw := range rows {
		data[i] = model.Record{
			Reason: raw.Reason,
			Count:  CoerceCount(raw.CountText),
			Row:    raw.Row,
		}
	}
	return data
}

// CoerceCount parses count text the way a numeric field is read from a
// CSV export. Blank text is 0. "Infinity" with an optional sign and the
// unsigned 0x, 0o and 0b integer forms are accepted. Anything else that is
// not a decimal number (including "N/A" and "1,234") is NaN.
func CoerceCount(text string) float64 {
	s := strings.TrimSpace(text)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if v, ok := parseRadixInt(s); ok {
		return v
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return math.NaN()
	}
	return d.InexactFloat64()
}

// parseRadixInt reads 0x/0o/0b prefixed integers. ok is false when s has
// no such prefix; a prefixed but malformed value is NaN.
func parseRadixInt(s string) (v float64, ok bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, false
	}
	var base int
	switch s[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false
	}
	n, good := new(big.Int).SetString(s[2:], base)
	if !good {
		return math.NaN(), true
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, true
}
