package gait

import (
	"fmt"
	"strconv"
	"strings"
)

// Selections are the user-approved time ranges of a recording.
type Selections []Interval

// ParseSelections reads "a-b c-d ...". Each bound is a decimal number and
// a must not exceed b.
func ParseSelections(s string) (Selections, error) {
	tokens := strings.Fields(strings.Trim(strings.TrimSpace(s), `"`))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadSelection)
	}
	out := make(Selections, 0, len(tokens))
	for _, tok := range tokens {
		lo, hi, ok := strings.Cut(tok, "-")
		if !ok {
			return nil, fmt.Errorf("%w: token %q has no '-'", ErrBadSelection, tok)
		}
		a, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: token %q: %v", ErrBadSelection, tok, err)
		}
		b, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: token %q: %v", ErrBadSelection, tok, err)
		}
		if a > b {
			return nil, fmt.Errorf("%w: token %q ends before it starts", ErrBadSelection, tok)
		}
		out = append(out, Interval{Start: a, End: b})
	}
	return out, nil
}

func (s Selections) String() string {
	parts := make([]string, len(s))
	for i, iv := range s {
		parts[i] = FormatFloat(iv.Start) + "-" + FormatFloat(iv.End)
	}
	return strings.Join(parts, " ")
}

// Contains reports whether iv lies entirely inside one selection.
func (s Selections) Contains(iv Interval) bool {
	for _, sel := range s {
		if sel.Start <= iv.Start && iv.End <= sel.End {
			return true
		}
	}
	return false
}

// FilterValid keeps the intervals contained in some selection.
func FilterValid(ivs []Interval, s Selections) []Interval {
	out := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if s.Contains(iv) {
			out = append(out, iv)
		}
	}
	return out
}
