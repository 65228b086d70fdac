package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// Check reports header problems in a directory of recordings and counts the
// recordings per user and posture.
func Check(dir string) (*CheckReport, error) {
	if err := requireArg(dir, "input directory"); err != nil {
		return nil, err
	}
	files, err := listFiles(dir)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		Findings: []CheckFinding{},
		Skipped:  []string{},
		Counts:   map[string]int{},
	}
	for _, path := range files {
		name, err := gait.ParseRecordingName(path)
		if err != nil {
			slog.Warn("can't parse file name, skipped", "file", filepath.Base(path))
			report.Skipped = append(report.Skipped, path)
			continue
		}
		if _, err := name.Posture(); err == nil {
			report.Counts[name.GroupKey()]++
		}

		h, _, err := gait.ReadHeader(path)
		if err != nil {
			report.Findings = append(report.Findings, CheckFinding{File: path, Problems: []string{err.Error()}})
			continue
		}
		if problems := headerProblems(h); len(problems) > 0 {
			report.Findings = append(report.Findings, CheckFinding{File: path, Problems: problems})
		}
	}
	return report, nil
}

func headerProblems(h *gait.Header) []string {
	var out []string
	for _, f := range gait.NameFields {
		if h.Has(f) {
			out = append(out, "found: "+f)
		}
	}
	if !h.Has(gait.FieldSelection) {
		out = append(out, "not found: "+gait.FieldSelection)
	}
	return out
}

// AddStored records the per-group counts held by src.
func (r *CheckReport) AddStored(src RowSource) error {
	counts, err := src.GroupCounts()
	if err != nil {
		return fmt.Errorf("count stored recordings: %w", err)
	}
	r.Stored = counts
	return nil
}
