package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicviz/reasons311/internal/model"
)

func TestValidate_Clean(t *testing.T) {
	data := model.Dataset{
		{Reason: "Pothole", Count: 50, Row: 2},
		{Reason: "Noise", Count: 120, Row: 3},
	}
	assert.Empty(t, Validate(data))
}

func TestValidate_Issues(t *testing.T) {
	data := model.Dataset{
		{Reason: "Pothole", Count: 50, Row: 2},
		{Reason: "Noise", Count: math.NaN(), Row: 3},
		{Reason: "", Count: 12, Row: 4},
		{Reason: "Pothole", Count: 5, Row: 5},
		{Reason: "Graffiti", Count: -1, Row: 6},
	}

	issues := Validate(data)
	require.Len(t, issues, 4)

	kinds := make(map[IssueKind]Issue)
	for _, is := range issues {
		kinds[is.Kind] = is
	}
	assert.Equal(t, 3, kinds[IssueNonNumeric].Row)
	assert.Equal(t, 4, kinds[IssueEmptyReason].Row)
	assert.Equal(t, 5, kinds[IssueDuplicateLabel].Row)
	assert.Contains(t, kinds[IssueDuplicateLabel].Description, "row 2")
	assert.Equal(t, 6, kinds[IssueNegativeCount].Row)
}

func TestIssueError(t *testing.T) {
	is := Issue{Kind: IssueNonNumeric, Row: 3, Description: "count is not a finite number"}
	assert.Equal(t, "non-numeric-count [row 3]: count is not a finite number", is.Error())
}
