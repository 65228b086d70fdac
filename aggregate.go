package gait

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CycleExtremes returns the per-cycle minimum and maximum of values. Each
// cycle covers samples with Start <= time < End; NaN samples are ignored
// and cycles without samples are skipped. time must be non-decreasing.
func CycleExtremes(time, values []float64, cycles []Interval) (mins, maxs []float64) {
	mins = make([]float64, 0, len(cycles))
	maxs = make([]float64, 0, len(cycles))
	buf := make([]float64, 0, 64)
	for _, c := range cycles {
		lo := sort.SearchFloat64s(time, c.Start)
		hi := sort.SearchFloat64s(time, c.End)
		buf = buf[:0]
		for _, v := range values[lo:hi] {
			if !math.IsNaN(v) {
				buf = append(buf, v)
			}
		}
		if len(buf) == 0 {
			continue
		}
		mins = append(mins, floats.Min(buf))
		maxs = append(maxs, floats.Max(buf))
	}
	return mins, maxs
}

// SummarizeCycles computes quantiles over the per-cycle minima and maxima.
// With no usable cycle both summaries are nil.
func SummarizeCycles(time, values []float64, cycles []Interval) (minQ, maxQ *Quantile5, err error) {
	mins, maxs := CycleExtremes(time, values, cycles)
	minQ, err = optionalQuantile(mins)
	if err != nil {
		return nil, nil, err
	}
	maxQ, err = optionalQuantile(maxs)
	if err != nil {
		return nil, nil, err
	}
	return minQ, maxQ, nil
}

// optionalQuantile maps an empty sample to a nil summary.
func optionalQuantile(v []float64) (*Quantile5, error) {
	q, err := Quantile5Of(v)
	if errors.Is(err, ErrEmptyInput) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Mean returns the arithmetic mean, or nil for an empty sample.
func Mean(v []float64) *float64 {
	if len(v) == 0 {
		return nil
	}
	m := stat.Mean(v, nil)
	return &m
}
