package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePositiveInt(t *testing.T) {
	cases := []struct {
		input    string
		fallback int
		want     int
		ok       bool
	}{
		{"5", 10, 5, true},
		{" 5 ", 10, 5, true},
		{"", 10, 10, false},
		{"0", 10, 10, false},
		{"-3", 10, 10, false},
		{"abc", 10, 10, false},
	}
	for _, tc := range cases {
		got, ok := ParsePositiveInt(tc.input, tc.fallback)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
	}
}

func TestParseNonNegativeInt(t *testing.T) {
	got, ok := ParseNonNegativeInt("0", 5)
	assert.Equal(t, 0, got)
	assert.True(t, ok)

	got, ok = ParseNonNegativeInt("-1", 5)
	assert.Equal(t, 5, got)
	assert.False(t, ok)
}

func TestParseListWindow(t *testing.T) {
	skip, limit := ParseListWindow("", "")
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultListLimit, limit)

	skip, limit = ParseListWindow("20", "50")
	assert.Equal(t, 20, skip)
	assert.Equal(t, 50, limit)

	_, limit = ParseListWindow("", "999999")
	assert.Equal(t, MaxListLimit, limit)

	skip, limit = ParseListWindow("-5", "0")
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultListLimit, limit)
}

func TestCanonicalVenueType(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"  ":            "",
		"Fine Dining":   "fine-dining",
		"casual":        "casual-dining",
		"Cocktail Bar":  "cocktail-bar",
		"gastropub":     "pub",
		"café":          "cafe",
		"coffee-shop":   "cafe",
		"wine-bar":      "wine-bar",
		"Bistro":        "bistro",
		"supper club":   "supper club",
		" steakhouse  ": "steakhouse",
	}
	for input, want := range cases {
		assert.Equal(t, want, CanonicalVenueType(input), "input %q", input)
	}
}
