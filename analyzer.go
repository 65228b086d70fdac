package gait

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
)

// Config controls AnalyzeFile.
type Config struct {
	// Dictionary renames raw columns. Nil expects canonical input.
	Dictionary *Dictionary
	// RecordingBounds adds the recording start and end as cycle boundaries.
	RecordingBounds bool
}

// Signal is one sensor channel with the quantiles of its per-cycle extremes.
type Signal struct {
	Values []float64  `json:"-"`
	Min    *Quantile5 `json:"min,omitempty"`
	Max    *Quantile5 `json:"max,omitempty"`
}

// GaitSummary lists the cycle starts and summarises valid cycle durations.
type GaitSummary struct {
	Starts    []float64  `json:"starts"`
	Durations *Quantile5 `json:"durations,omitempty"`
}

// RawData is the analysis of one recording. It is not modified after
// Analyze returns.
type RawData struct {
	X        []float64                          `json:"-"`
	Y        [NumPositions][NumVariables]Signal `json:"-"`
	LContact []int64                            `json:"-"`
	RContact []int64                            `json:"-"`

	Gait GaitSummary `json:"gait"`
	DB   *Quantile5  `json:"db,omitempty"`
	LT   *Quantile5  `json:"lt,omitempty"`
	RT   *Quantile5  `json:"rt,omitempty"`

	Selections  Selections `json:"selections"`
	Cycles      []Interval `json:"cycles"`
	ValidCycles []Interval `json:"valid_cycles"`
	ValidDB     []Interval `json:"valid_db"`
	ValidLT     []Interval `json:"valid_lt"`
	ValidRT     []Interval `json:"valid_rt"`
}

// Signal returns the channel of a position and variable.
func (r *RawData) Signal(p Position, v Variable) *Signal {
	return &r.Y[p][v]
}

// Segmentation holds the support phases and gait cycles of a recording.
type Segmentation struct {
	DBStarts []float64
	Cycles   []Interval
	DB       []Interval
	LT       []Interval
	RT       []Interval
}

// Segment decodes contacts, classifies support and extracts the cycles of
// a canonical table. The support channels are added to t.
func Segment(t *Table, withBounds bool) (*Segmentation, error) {
	time, err := t.Floats(ColTime)
	if err != nil {
		return nil, err
	}
	for i, v := range time {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("row %d: time is not a number: %w", i, typeMismatch(ColTime))
		}
		if i > 0 && v < time[i-1] {
			return nil, fmt.Errorf("row %d: time decreases: %w", i, typeMismatch(ColTime))
		}
	}
	if err := DecodeContact(t); err != nil {
		return nil, err
	}
	if err := ClassifySupport(t); err != nil {
		return nil, err
	}

	db, dbEdges, err := ChannelIntervals(t, ColDB)
	if err != nil {
		return nil, err
	}
	lt, _, err := ChannelIntervals(t, ColLTSG)
	if err != nil {
		return nil, err
	}
	rt, _, err := ChannelIntervals(t, ColRTSG)
	if err != nil {
		return nil, err
	}

	boundaries := GaitBoundaries(dbEdges.Starts)
	if withBounds && len(time) > 0 {
		boundaries = WithRecordingBounds(boundaries, time[len(time)-1])
	}
	return &Segmentation{
		DBStarts: dbEdges.Starts,
		Cycles:   GaitCycles(boundaries),
		DB:       db,
		LT:       lt,
		RT:       rt,
	}, nil
}

// Analyze runs the gait pipeline over a canonical table. Only cycles and
// support intervals inside a selection count; nil selections leave none.
func Analyze(t *Table, sel Selections) (*RawData, error) {
	return analyze(t, sel, false)
}

// AnalyzeWithBounds is Analyze over the cycle list that filter writes,
// which starts at 0 and ends at the last sample.
func AnalyzeWithBounds(t *Table, sel Selections) (*RawData, error) {
	return analyze(t, sel, true)
}

func analyze(t *Table, sel Selections, withBounds bool) (*RawData, error) {
	seg, err := Segment(t, withBounds)
	if err != nil {
		return nil, err
	}
	time, _ := t.Floats(ColTime)
	lc, _ := t.Ints(ColLTContact)
	rc, _ := t.Ints(ColRTContact)

	raw := &RawData{
		X:           time,
		LContact:    lc,
		RContact:    rc,
		Selections:  sel,
		Cycles:      seg.Cycles,
		ValidCycles: FilterValid(seg.Cycles, sel),
		ValidDB:     FilterValid(seg.DB, sel),
		ValidLT:     FilterValid(seg.LT, sel),
		ValidRT:     FilterValid(seg.RT, sel),
	}
	raw.Gait.Starts = CycleStarts(seg.Cycles)

	if raw.Gait.Durations, err = optionalQuantile(Durations(raw.ValidCycles)); err != nil {
		return nil, fmt.Errorf("gait durations: %w", err)
	}
	if raw.DB, err = optionalQuantile(Durations(raw.ValidDB)); err != nil {
		return nil, fmt.Errorf("double support: %w", err)
	}
	if raw.LT, err = optionalQuantile(Durations(raw.ValidLT)); err != nil {
		return nil, fmt.Errorf("left single support: %w", err)
	}
	if raw.RT, err = optionalQuantile(Durations(raw.ValidRT)); err != nil {
		return nil, fmt.Errorf("right single support: %w", err)
	}

	for p := range NumPositions {
		for v := range NumVariables {
			name := columnNames[p][v]
			values, err := t.Floats(name)
			if err != nil {
				return nil, err
			}
			minQ, maxQ, err := SummarizeCycles(time, values, raw.ValidCycles)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			raw.Y[p][v] = Signal{Values: values, Min: minQ, Max: maxQ}
		}
	}
	return raw, nil
}

// AnalyzeFile validates the info header of a raw export, reads its
// selection and table, and analyses it. An unreadable selection is logged
// and leaves the recording without valid cycles.
func AnalyzeFile(path string, cfg Config) (*RawData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return AnalyzeReader(path, f, cfg)
}

// AnalyzeReader is AnalyzeFile over an open export; name is used in logs
// and errors.
func AnalyzeReader(name string, r io.Reader, cfg Config) (*RawData, error) {
	br := bufio.NewReaderSize(r, headerBufferSize)
	pre, err := readPreamble(br)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h, err := ParseHeader(pre)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := h.ValidateInfo(); err != nil {
		return nil, err
	}
	sel, err := ParseSelections(h.Selection())
	if err != nil {
		if !errors.Is(err, ErrBadSelection) {
			return nil, err
		}
		slog.Warn("recording has no usable selection", "file", name, "err", err)
		sel = nil
	}

	t, err := readRecordingTable(br, cfg.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return analyze(t, sel, cfg.RecordingBounds)
}
