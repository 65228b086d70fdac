package gait

import (
	"fmt"
	"strings"
)

// BuildNotes turns an analysis into a short plain-text report.
func BuildNotes(name string, r *RawData) string {
	if r == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Recording: %s\n", name)
	if len(r.X) > 0 {
		fmt.Fprintf(&b, "Samples %d | Duration %.2f s\n", len(r.X), r.X[len(r.X)-1]-r.X[0])
	}
	if len(r.Selections) > 0 {
		fmt.Fprintf(&b, "Selection: %s\n", r.Selections)
	} else {
		b.WriteString("Selection: none (no cycle counts as valid)\n")
	}
	fmt.Fprintf(
		&b,
		"Cycles %d detected / %d valid | DB %d | LT %d | RT %d valid phases\n",
		len(r.Cycles),
		len(r.ValidCycles),
		len(r.ValidDB),
		len(r.ValidLT),
		len(r.ValidRT),
	)

	b.WriteString("\nPhase Durations (s)\n")
	writeQuantileLine(&b, "Gait", r.Gait.Durations)
	writeQuantileLine(&b, "DB", r.DB)
	writeQuantileLine(&b, "LT", r.LT)
	writeQuantileLine(&b, "RT", r.RT)

	missing := 0
	for p := range NumPositions {
		for v := range NumVariables {
			if r.Y[p][v].Min == nil {
				missing++
			}
		}
	}
	if missing > 0 {
		fmt.Fprintf(&b, "\n%d of %d signals have no per-cycle summary\n", missing, NumPositions*NumVariables)
	}
	return b.String()
}

func writeQuantileLine(b *strings.Builder, label string, q *Quantile5) {
	if q == nil {
		fmt.Fprintf(b, "- %-4s | n/a\n", label)
		return
	}
	fmt.Fprintf(
		b,
		"- %-4s | min %.3f | Q1 %.3f | median %.3f | Q3 %.3f | max %.3f\n",
		label, q.Min, q.Q1, q.Median, q.Q3, q.Max,
	)
}
