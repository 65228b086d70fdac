package gait

import (
	"fmt"
	"strings"
)

// Position is an anatomical sensor segment.
type Position int

const (
	PosL Position = iota
	PosT
	PosC
	PosScapularLT
	PosScapularRT
	PosSC
	PosHipLT
	PosHipRT
	PosKneeLT
	PosKneeRT
	PosShoulderLT
	PosShoulderRT
	PosPSISLT
	PosPSISRT
	PosFootLT
	PosFootRT

	NumPositions = iota
)

var positionLabels = [NumPositions]string{
	"L", "T", "C",
	"Scapular LT", "Scapular RT", "SC",
	"HIP LT", "HIP RT",
	"Knee LT", "Knee RT",
	"Shoulder LT", "Shoulder RT",
	"PSIS LT", "PSIS RT",
	"Foot LT", "Foot RT",
}

func (p Position) String() string {
	if p < 0 || int(p) >= NumPositions {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionLabels[p]
}

// ParsePosition accepts the segment label as it appears in column names.
func ParsePosition(s string) (Position, error) {
	for i, label := range positionLabels {
		if strings.EqualFold(label, strings.TrimSpace(s)) {
			return Position(i), nil
		}
	}
	return 0, fmt.Errorf("unknown position %q", s)
}

// AllPositions returns every position in export order.
func AllPositions() []Position {
	out := make([]Position, NumPositions)
	for i := range out {
		out[i] = Position(i)
	}
	return out
}

// Variable is one of the per-segment signals.
type Variable int

const (
	AccelX Variable = iota
	AccelY
	AccelZ
	Course
	Pitch
	Roll
	MagnetX
	MagnetY
	MagnetZ

	NumVariables = iota
)

var variableLabels = [NumVariables]string{
	"AccelX", "AccelY", "AccelZ",
	"Course", "Pitch", "Roll",
	"MagnetX", "MagnetY", "MagnetZ",
}

func (v Variable) String() string {
	if v < 0 || int(v) >= NumVariables {
		return fmt.Sprintf("Variable(%d)", int(v))
	}
	return variableLabels[v]
}

func ParseVariable(s string) (Variable, error) {
	for i, label := range variableLabels {
		if strings.EqualFold(label, strings.TrimSpace(s)) {
			return Variable(i), nil
		}
	}
	return 0, fmt.Errorf("unknown variable %q", s)
}

// AllVariables returns every variable in export order.
func AllVariables() []Variable {
	out := make([]Variable, NumVariables)
	for i := range out {
		out[i] = Variable(i)
	}
	return out
}

// Canonical column names shared by every stage.
const (
	ColTime      = "time"
	ColLTContact = "Noraxon MyoMotion-Segments-Foot LT-Contact"
	ColRTContact = "Noraxon MyoMotion-Segments-Foot RT-Contact"

	ColLT   = "LT"
	ColRT   = "RT"
	ColDB   = "DB"
	ColSG   = "SG"
	ColLTSG = "LT_SG"
	ColRTSG = "RT_SG"
)

// ContactCode marks a foot as on the ground in the contact channels.
const ContactCode = 1000

const longFormPrefix = "Noraxon MyoMotion-Segments-"

var columnNames = buildColumnNames()

func buildColumnNames() [NumPositions][NumVariables]string {
	var table [NumPositions][NumVariables]string
	axes := [3]string{"X", "Y", "Z"}
	angles := [3]string{"course", "pitch", "roll"}
	for p := range NumPositions {
		label := positionLabels[p]
		first, second, _ := strings.Cut(label, " ")
		if second != "" {
			second += " "
		}
		for i := range 3 {
			table[p][int(AccelX)+i] = fmt.Sprintf("%s Accel Sensor %s %s(mG)", first, axes[i], second)

			// L is exported only in long form for the angle channels.
			if Position(p) == PosL {
				table[p][int(Course)+i] = fmt.Sprintf("%sL-%s (deg)", longFormPrefix, capitalize(angles[i]))
			} else {
				table[p][int(Course)+i] = fmt.Sprintf("%s %s %s(deg)", first, angles[i], second)
			}

			// Magnetometer columns are long form for every position.
			table[p][int(MagnetX)+i] = fmt.Sprintf("%s%s-Magnetometer-%s (mGauss)", longFormPrefix, label, strings.ToLower(axes[i]))
		}
	}
	return table
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ColumnName returns the canonical column label of a signal.
func ColumnName(v Variable, p Position) string {
	return columnNames[p][v]
}

// SignalColumns lists every signal column, positions outer and variables inner.
func SignalColumns() []string {
	out := make([]string, 0, NumPositions*NumVariables)
	for p := range NumPositions {
		for v := range NumVariables {
			out = append(out, columnNames[p][v])
		}
	}
	return out
}
