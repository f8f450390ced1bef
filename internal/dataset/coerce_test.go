package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"50", 50},
		{" 120 ", 120},
		{"0", 0},
		{"", 0},
		{"   ", 0},
		{"2.5", 2.5},
		{"-3", -3},
		{"1e3", 1000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CoerceCount(tt.in), "CoerceCount(%q)", tt.in)
	}
}

func TestCoerceCount_InfinityAndRadix(t *testing.T) {
	assert.Equal(t, math.Inf(1), CoerceCount("Infinity"))
	assert.Equal(t, math.Inf(1), CoerceCount(" +Infinity "))
	assert.Equal(t, math.Inf(-1), CoerceCount("-Infinity"))
	assert.Equal(t, 16.0, CoerceCount("0x10"))
	assert.Equal(t, 255.0, CoerceCount("0XFF"))
	assert.Equal(t, 8.0, CoerceCount("0o10"))
	assert.Equal(t, 5.0, CoerceCount("0b101"))
	assert.Equal(t, 10.0, CoerceCount("010"), "leading zeros stay decimal")
}

func TestCoerceCount_NonNumeric(t *testing.T) {
	for _, in := range []string{"N/A", "1,234", "12abc", "abc", "infinity", "0x", "0xZZ", "-0x10", "0b102", "0x1_0"} {
		assert.True(t, math.IsNaN(CoerceCount(in)), "CoerceCount(%q) should be NaN", in)
	}
}

func TestCoerce_KeepsOrderAndRows(t *testing.T) {
	rows := []RawRecord{
		{Reason: "Pothole", CountText: "50", Row: 2},
		{Reason: "Noise", CountText: "N/A", Row: 3},
	}
	data := Coerce(rows)
	assert.Len(t, data, 2)
	assert.Equal(t, "Pothole", data[0].Reason)
	assert.Equal(t, 50.0, data[0].Count)
	assert.Equal(t, 2, data[0].Row)
	assert.Equal(t, "Noise", data[1].Reason)
	assert.True(t, math.IsNaN(data[1].Count))
	assert.Equal(t, 3, data[1].Row)
}
