package dataset

import (
	"bytes"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicviz/reasons311/internal/model"
)

func TestRead_HeaderDriven(t *testing.T) {
	in := "Count,extra,reason\n50,x,Pothole\n120,y,Noise\n"
	rows, err := Read(strings.NewReader(in), DefaultColumns)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, RawRecord{Reason: "Pothole", CountText: "50", Row: 2}, rows[0])
	assert.Equal(t, RawRecord{Reason: "Noise", CountText: "120", Row: 3}, rows[1])
}

func TestRead_CaseInsensitiveHeader(t *testing.T) {
	// Both "Reason" and "reason" satisfy the default column names.
	for _, header := range []string{"reason,Count", "Reason,Count", "REASON,count", " reason , Count "} {
		rows, err := Read(strings.NewReader(header+"\nNoise,1\n"), DefaultColumns)
		require.NoError(t, err, "header %q", header)
		require.Len(t, rows, 1)
		assert.Equal(t, "Noise", rows[0].Reason)
	}
}

func TestRead_ByteOrderMark(t *testing.T) {
	rows, err := Read(strings.NewReader("\ufeffreason,Count\nNoise,1\n"), DefaultColumns)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestRead_MissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("reason,total\nNoise,1\n"), DefaultColumns)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `"Count"`)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""), DefaultColumns)
	require.Error(t, err)
}

func TestRead_HeaderOnly(t *testing.T) {
	rows, err := Read(strings.NewReader("reason,Count\n"), DefaultColumns)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRead_RaggedRow(t *testing.T) {
	_, err := Read(strings.NewReader("reason,Count\nNoise,1\nTrash\n"), DefaultColumns)
	require.Error(t, err)
}

func TestRead_CustomColumns(t *testing.T) {
	cols := Columns{Reason: "type", Count: "n"}
	rows, err := Read(strings.NewReader("type,n\nGraffiti,9\n"), cols)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Graffiti", rows[0].Reason)
	assert.Equal(t, "9", rows[0].CountText)
}

func TestWrite_RoundTrip(t *testing.T) {
	data := model.Dataset{
		{Reason: "Noise", Count: 120},
		{Reason: "Street Cleaning, Downtown", Count: 2.5},
		{Reason: "Broken", Count: math.NaN()},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, data, DefaultColumns))

	rows, err := Read(&buf, DefaultColumns)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	got := Coerce(rows)
	assert.Equal(t, "Noise", got[0].Reason)
	assert.Equal(t, 120.0, got[0].Count)
	assert.Equal(t, "Street Cleaning, Downtown", got[1].Reason)
	assert.Equal(t, 2.5, got[1].Count)
	assert.True(t, math.IsNaN(got[2].Count))
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("../../testdata/boston_311_2023_by_reason.csv")
	require.NoError(t, err)
	defer f.Close()

	rows, err := Read(f, DefaultColumns)
	require.NoError(t, err)
	require.Len(t, rows, 15)

	data := Coerce(rows)
	for _, rec := range data {
		assert.NotEmpty(t, rec.Reason)
		assert.True(t, rec.Valid(), "row %d should have a numeric count", rec.Row)
	}
}
