package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	email, err := NewEmail("  Dater@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "dater@example.com", email.String())

	for _, input := range []string{"", "   ", "no-at-sign", "@host.only", strings.Repeat("a", 250) + "@example.com"} {
		_, err := NewEmail(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNewURL(t *testing.T) {
	link, err := NewURL("https://example.com/venue")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/venue", link.String())

	link, err = NewURL("   ")
	require.NoError(t, err, "empty URL is optional")
	assert.Empty(t, link.String())

	_, err = NewURL("not a url")
	assert.Error(t, err)
}
