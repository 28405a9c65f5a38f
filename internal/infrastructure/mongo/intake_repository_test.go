package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/twotable/twotable-services/api/internal/intake/application"
)

func TestParseIntakeID(t *testing.T) {
	valid := primitive.NewObjectID()
	parsed, err := parseIntakeID("  " + valid.Hex() + "  ")
	require.NoError(t, err)
	assert.Equal(t, valid, parsed)

	for _, input := range []string{"", "not-hex", "123"} {
		_, err := parseIntakeID(input)
		assert.ErrorIs(t, err, application.ErrInvalidID, "input %q", input)
	}
}

func TestListOptions(t *testing.T) {
	opts := listOptions(application.Paging{Skip: 20, Limit: 50})
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(20), *opts.Skip)
	assert.Equal(t, int64(50), *opts.Limit)

	opts = listOptions(application.Paging{})
	assert.Nil(t, opts.Skip)
	assert.Nil(t, opts.Limit)
	require.NotNil(t, opts.Sort, "listings are always newest first")
}
