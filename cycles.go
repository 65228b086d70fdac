package gait

// GaitBoundaries keeps every second double-support start: one full stride
// passes through two double-support phases.
func GaitBoundaries(dbStarts []float64) []float64 {
	out := make([]float64, 0, (len(dbStarts)+1)/2)
	for i := 0; i < len(dbStarts); i += 2 {
		out = append(out, dbStarts[i])
	}
	return out
}

// WithRecordingBounds brackets the boundaries with 0 and the last sample
// time, so the first and last partial strides become cycles too.
func WithRecordingBounds(boundaries []float64, lastTime float64) []float64 {
	out := make([]float64, 0, len(boundaries)+2)
	out = append(out, 0)
	out = append(out, boundaries...)
	return append(out, lastTime)
}

// GaitCycles chains consecutive boundaries into cycles.
func GaitCycles(boundaries []float64) []Interval {
	if len(boundaries) < 2 {
		return nil
	}
	out := make([]Interval, 0, len(boundaries)-1)
	for i := 1; i < len(boundaries); i++ {
		out = append(out, Interval{Start: boundaries[i-1], End: boundaries[i]})
	}
	return out
}

// CycleStarts returns the start time of every cycle.
func CycleStarts(cycles []Interval) []float64 {
	out := make([]float64, len(cycles))
	for i, c := range cycles {
		out[i] = c.Start
	}
	return out
}

// Durations returns End-Start for every interval.
func Durations(ivs []Interval) []float64 {
	out := make([]float64, len(ivs))
	for i, iv := range ivs {
		out[i] = iv.Duration()
	}
	return out
}
