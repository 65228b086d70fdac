package gait

import (
	"fmt"
	"strconv"
	"strings"
)

// Posture is the walking condition encoded in a recording's filename.
type Posture int

const (
	// PostureSplit recordings hold two walking bouts, one per half.
	PostureSplit Posture = 1
	// PostureContinuous recordings hold a single walking bout.
	PostureContinuous Posture = 2
)

func ParsePosture(s string) (Posture, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("posture %q: %w", s, err)
	}
	p := Posture(n)
	if p != PostureSplit && p != PostureContinuous {
		return 0, fmt.Errorf("unsupported posture %d", n)
	}
	return p, nil
}

// SelectWindow picks the centred cycles covering percent of the recording.
// Continuous recordings get one window around the middle cycle; split
// recordings get one window centred in each half.
func SelectWindow(cycles []Interval, percent int, posture Posture) (Selections, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("percent %d outside [0,100]", percent)
	}
	n := len(cycles)
	if n == 0 {
		return nil, ErrNoCycles
	}
	switch posture {
	case PostureContinuous:
		size := n * percent / 100
		return Selections{window(cycles, n/2, size)}, nil
	case PostureSplit:
		half := n / 2
		if half == 0 {
			return nil, fmt.Errorf("%w: posture %d needs at least 2 cycles, got %d", ErrNoCycles, posture, n)
		}
		size := half * percent / 100
		// The second half starts after the middle cycle when n is odd.
		second := n - half
		return Selections{
			window(cycles, half/2, size),
			window(cycles, second+half/2, size),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported posture %d", posture)
	}
}

// window spans size cycles around centre. An empty window collapses onto
// the centre cycle's start.
func window(cycles []Interval, centre, size int) Interval {
	if size == 0 {
		s := cycles[centre].Start
		return Interval{Start: s, End: s}
	}
	first := centre - size/2
	last := first + size - 1
	return Interval{Start: cycles[first].Start, End: cycles[last].End}
}
