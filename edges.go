package gait

import "fmt"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start float64 `json:"Start"`
	End   float64 `json:"End"`
}

func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// Edges are the rising and falling transitions of a boolean channel.
type Edges struct {
	Starts []float64
	Ends   []float64
}

// DetectEdges compares each row with its predecessor. A start is a row that
// turns true, an end a row that turns false. Row 0 has no predecessor and
// never produces an edge.
func DetectEdges(time []float64, channel []bool) (Edges, error) {
	if len(time) != len(channel) {
		return Edges{}, fmt.Errorf("edge detection: %d time rows, %d channel rows", len(time), len(channel))
	}
	var e Edges
	for i := 1; i < len(channel); i++ {
		prev, cur := channel[i-1], channel[i]
		switch {
		case !prev && cur:
			e.Starts = append(e.Starts, time[i])
		case prev && !cur:
			e.Ends = append(e.Ends, time[i])
		}
	}
	return e, nil
}

// PairEdges matches every start with the first end after it. An end that
// precedes the first start and a start with no closing end are dropped, so
// intervals never begin or finish outside the recording.
func PairEdges(e Edges) []Interval {
	out := make([]Interval, 0, len(e.Starts))
	j := 0
	for _, s := range e.Starts {
		if n := len(out); n > 0 && s < out[n-1].End {
			continue
		}
		for j < len(e.Ends) && e.Ends[j] <= s {
			j++
		}
		if j == len(e.Ends) {
			break
		}
		out = append(out, Interval{Start: s, End: e.Ends[j]})
		j++
	}
	return out
}

// ChannelIntervals detects and pairs the edges of a named boolean column.
func ChannelIntervals(t *Table, name string) ([]Interval, Edges, error) {
	time, err := t.Floats(ColTime)
	if err != nil {
		return nil, Edges{}, err
	}
	ch, err := t.Bools(name)
	if err != nil {
		return nil, Edges{}, err
	}
	e, err := DetectEdges(time, ch)
	if err != nil {
		return nil, Edges{}, err
	}
	return PairEdges(e), e, nil
}
