package benchmark

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumericStrings(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1.5M", 1_500_000, true},
		{"50%", 50, true},
		{"1,000", 1000, true},
		{"$2,500,000", 2_500_000, true},
		{"120K", 120_000, true},
		{"3.2b", 3_200_000_000, true},
		{"  42  ", 42, true},
		{"-15%", -15, true},
		{"invalid", 0, false},
		{"", 0, false},
		{"$", 0, false},
		{"M", 0, false},
		{"N/A", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNumeric(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
		}
	}
}

func TestParseNumericNonStrings(t *testing.T) {
	if _, ok := ParseNumeric(nil); ok {
		t.Fatal("nil should not parse")
	}
	got, ok := ParseNumeric(12.5)
	assert.True(t, ok)
	assert.Equal(t, 12.5, got)

	got, ok = ParseNumeric(json.Number("7"))
	assert.True(t, ok)
	assert.Equal(t, 7.0, got)

	if _, ok := ParseNumeric([]string{"x"}); ok {
		t.Fatal("slices should not parse")
	}
}

func TestClampPercentile(t *testing.T) {
	cases := []struct {
		in      int
		want    int
		changed bool
	}{
		{-5, 0, true},
		{0, 0, false},
		{50, 50, false},
		{100, 100, false},
		{140, 100, true},
	}
	for _, tc := range cases {
		got, changed := ClampPercentile(tc.in)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.changed, changed)
	}
}

func TestParsePosition(t *testing.T) {
	p, ok := ParsePosition("above average")
	assert.True(t, ok)
	assert.Equal(t, PositionAboveAverage, p)

	p, ok = ParsePosition("nonsense")
	assert.False(t, ok)
	assert.Equal(t, PositionAverage, p)
}
