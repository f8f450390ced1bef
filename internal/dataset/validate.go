package dataset

import (
	"fmt"
	"strings"

	"github.com/civicviz/reasons311/internal/model"
)

// IssueKind classifies a malformed record.
type IssueKind string

const (
	IssueEmptyReason    IssueKind = "empty-reason"
	IssueNonNumeric     IssueKind = "non-numeric-count"
	IssueNegativeCount  IssueKind = "negative-count"
	IssueDuplicateLabel IssueKind = "duplicate-reason"
)

// Issue describes a record that will render oddly. Issues never fail a load.
type Issue struct {
	Kind        IssueKind
	Row         int
	Reason      string
	Description string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s [row %d]: %s", i.Kind, i.Row, i.Description)
}

// Validate reports records that are present but malformed.
func Validate(data model.Dataset) []Issue {
	var issues []Issue
	firstRow := make(map[string]int, len(data))

	for _, rec := range data {
		if strings.TrimSpace(rec.Reason) == "" {
			issues = append(issues, Issue{
				Kind:        IssueEmptyReason,
				Row:         rec.Row,
				Reason:      rec.Reason,
				Description: "reason label is empty",
			})
		}

		if !rec.Valid() {
			issues = append(issues, Issue{
				Kind:        IssueNonNumeric,
				Row:         rec.Row,
				Reason:      rec.Reason,
				Description: fmt.Sprintf("count for %q is not a finite number", rec.Reason),
			})
		} else if rec.Count < 0 {
			issues = append(issues, Issue{
				Kind:        IssueNegativeCount,
				Row:         rec.Row,
				Reason:      rec.Reason,
				Description: fmt.Sprintf("count for %q is negative (%s)", rec.Reason, rec.CountText()),
			})
		}

		if row, seen := firstRow[rec.Reason]; seen {
			issues = append(issues, Issue{
				Kind:        IssueDuplicateLabel,
				Row:         rec.Row,
				Reason:      rec.Reason,
				Description: fmt.Sprintf("reason %q already appeared on row %d", rec.Reason, row),
			})
		} else {
			firstRow[rec.Reason] = rec.Row
		}
	}
	return issues
}
