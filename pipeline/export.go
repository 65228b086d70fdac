package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// RangeSelections turns index ranges into the gait cycle list of Filter into
// selections. Each range spans cycles From..To-1.
func RangeSelections(cycles []gait.Interval, ranges []Range) (gait.Selections, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: no ranges", gait.ErrBadSelection)
	}
	sel := make(gait.Selections, 0, len(ranges))
	for _, r := range ranges {
		if r.From < 0 || r.To <= r.From || r.To > len(cycles) {
			return nil, fmt.Errorf("%w: range %d-%d outside %d cycles", gait.ErrBadSelection, r.From, r.To, len(cycles))
		}
		sel = append(sel, gait.Interval{Start: cycles[r.From].Start, End: cycles[r.To-1].End})
	}
	return sel, nil
}

// Export analyses one recording over the chosen cycle ranges and writes its
// result row to {stem}-result.csv (or .parquet).
func Export(opts ExportOptions) (*ExportResult, error) {
	if err := requireArg(opts.File, "csv path"); err != nil {
		return nil, err
	}
	if err := requireArg(opts.SaveDir, "save directory"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.SaveDir, 0o755); err != nil {
		return nil, err
	}

	t, _, err := readRecording(opts.File, opts.Dictionary)
	if err != nil {
		return nil, err
	}
	seg, err := gait.Segment(t, true)
	if err != nil {
		return nil, fmt.Errorf("segment %s: %w", filepath.Base(opts.File), err)
	}
	sel, err := RangeSelections(seg.Cycles, opts.Ranges)
	if err != nil {
		return nil, err
	}
	raw, err := gait.AnalyzeWithBounds(t, sel)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", filepath.Base(opts.File), err)
	}

	row := gait.BuildExportRow(filepath.Base(opts.File), raw)
	out := filepath.Join(opts.SaveDir, fmt.Sprintf("%s-result.%s", stem(opts.File), opts.Format.extension()))
	if err := writeRows(out, opts.Format, exportRows(row)); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	slog.Debug("exported recording", "file", opts.File, "selection", sel.String(), "valid_cycles", len(raw.ValidCycles))
	return &ExportResult{File: out}, nil
}
