package gait

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Quantile5 is a five-number summary. Q1 and Q3 use nearest rank, the
// median interpolates between the middle pair of an even-length sample.
type Quantile5 struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Values returns the summary in column order.
func (q Quantile5) Values() [5]float64 {
	return [5]float64{q.Min, q.Q1, q.Median, q.Q3, q.Max}
}

// QuantileLabels name the Values entries.
var QuantileLabels = [5]string{"min", "Q1", "median", "Q3", "max"}

// Quantile5Of summarises v without modifying it.
func Quantile5Of(v []float64) (Quantile5, error) {
	if len(v) == 0 {
		return Quantile5{}, ErrEmptyInput
	}
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Quantile5{}, ErrNonFiniteInput
		}
	}
	s := append([]float64(nil), v...)
	sort.Float64s(s)
	n := len(s)

	median := s[n/2]
	if n%2 == 0 {
		median = (s[n/2-1] + s[n/2]) / 2
	}
	// stat.Empirical returns the first sorted value whose rank reaches p*n,
	// which is the nearest-rank index ceil(p*n)-1.
	return Quantile5{
		Min:    s[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, s, nil),
		Median: median,
		Q3:     stat.Quantile(0.75, stat.Empirical, s, nil),
		Max:    s[n-1],
	}, nil
}
