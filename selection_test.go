package gait

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelections(t *testing.T) {
	t.Parallel()

	sel, err := ParseSelections("4.37-15.965 20-31.5")
	require.NoError(t, err)
	assert.Equal(t, Selections{{4.37, 15.965}, {20, 31.5}}, sel)
	assert.Equal(t, "4.37-15.965 20-31.5", sel.String())

	sel, err = ParseSelections(`"1-2"`)
	require.NoError(t, err)
	assert.Equal(t, Selections{{1, 2}}, sel)

	for _, bad := range []string{"", "   ", "1", "a-2", "1-b", "3-1", "1-2 x"} {
		_, err := ParseSelections(bad)
		assert.ErrorIs(t, err, ErrBadSelection, "input %q", bad)
	}
}

func TestFilterValidRequiresContainment(t *testing.T) {
	t.Parallel()

	sel := Selections{{0, 2}, {5, 9}}
	ivs := []Interval{{0, 1}, {1, 2}, {1.5, 2.5}, {4, 6}, {5, 9}, {8, 10}}
	kept := FilterValid(ivs, sel)
	assert.Equal(t, []Interval{{0, 1}, {1, 2}, {5, 9}}, kept)
	for _, iv := range kept {
		assert.True(t, sel.Contains(iv))
	}
	assert.Empty(t, FilterValid(ivs, nil))
}
