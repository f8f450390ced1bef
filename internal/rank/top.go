package rank

import (
	"math"
	"slices"

	"github.com/civicviz/reasons311/internal/model"
)

// DefaultN is the number of reasons charted when no limit is configured.
const DefaultN = 10

// Top returns the first n records of data ordered by count descending.
// The input is not modified. Ties keep their input order, and records with
// a NaN count sort after every numeric record. Fewer than n records yields
// all of them; n <= 0 yields none.
func Top(data model.Dataset, n int) model.Dataset {
	if n <= 0 {
		return model.Dataset{}
	}

	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, ByCountDesc)

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return slices.Clip(sorted)
}

// ByCountDesc orders records by count, largest first, with NaN last.
func ByCountDesc(a, b model.Record) int {
	aNaN, bNaN := math.IsNaN(a.Count), math.IsNaN(b.Count)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a.Count > b.Count:
		return -1
	case a.Count < b.Count:
		return 1
	}
	return 0
}
