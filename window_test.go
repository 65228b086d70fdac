package gait

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evenCycles(n int) []Interval {
	out := make([]Interval, n)
	for i := range out {
		out[i] = Interval{Start: float64(i), End: float64(i + 1)}
	}
	return out
}

func TestSelectWindowContinuous(t *testing.T) {
	t.Parallel()

	cycles := evenCycles(10)
	sel, err := SelectWindow(cycles, 50, PostureContinuous)
	require.NoError(t, err)
	require.Len(t, sel, 1)
	// Window [3,8): cycle 3 start to cycle 7 end.
	assert.Equal(t, Interval{Start: cycles[3].Start, End: cycles[7].End}, sel[0])
	assert.Equal(t, "3-8", sel.String())
	assert.Len(t, FilterValid(cycles, sel), 5)
}

func TestSelectWindowSplit(t *testing.T) {
	t.Parallel()

	cycles := evenCycles(10)
	sel, err := SelectWindow(cycles, 40, PostureSplit)
	require.NoError(t, err)
	require.Len(t, sel, 2)
	// Two cycles around index 2 and two around index 7.
	assert.Equal(t, Interval{Start: 1, End: 3}, sel[0])
	assert.Equal(t, Interval{Start: 6, End: 8}, sel[1])
	assert.Equal(t, 1, strings.Count(sel.String(), " "))

	odd := evenCycles(11)
	sel, err = SelectWindow(odd, 100, PostureSplit)
	require.NoError(t, err)
	assert.Equal(t, Selections{{Start: 0, End: 5}, {Start: 6, End: 11}}, sel, "middle cycle of an odd list belongs to neither half")
}

func TestSelectWindowEmptyRange(t *testing.T) {
	t.Parallel()

	cycles := evenCycles(3)
	sel, err := SelectWindow(cycles, 10, PostureContinuous)
	require.NoError(t, err)
	assert.Equal(t, Selections{{Start: 1, End: 1}}, sel)
	assert.Empty(t, FilterValid(cycles, sel))
}

func TestSelectWindowErrors(t *testing.T) {
	t.Parallel()

	_, err := SelectWindow(nil, 50, PostureContinuous)
	assert.ErrorIs(t, err, ErrNoCycles)
	_, err = SelectWindow(evenCycles(1), 50, PostureSplit)
	assert.ErrorIs(t, err, ErrNoCycles)
	_, err = SelectWindow(evenCycles(4), 101, PostureContinuous)
	assert.Error(t, err)
	_, err = SelectWindow(evenCycles(4), 50, Posture(3))
	assert.Error(t, err)
}

func TestWindowsStayInRange(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 40; n++ {
		cycles := evenCycles(n)
		for p := 0; p <= 100; p += 5 {
			for _, posture := range []Posture{PostureSplit, PostureContinuous} {
				sel, err := SelectWindow(cycles, p, posture)
				require.NoError(t, err, "n=%d p=%d posture=%d", n, p, posture)
				for _, iv := range sel {
					assert.GreaterOrEqual(t, iv.Start, 0.0)
					assert.LessOrEqual(t, iv.End, float64(n))
					assert.LessOrEqual(t, iv.Start, iv.End)
				}
			}
		}
	}
}

func TestParsePosture(t *testing.T) {
	t.Parallel()

	p, err := ParsePosture(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, PostureContinuous, p)
	_, err = ParsePosture("3")
	assert.Error(t, err)
	_, err = ParsePosture("x")
	assert.Error(t, err)
}
