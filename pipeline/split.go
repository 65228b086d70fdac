package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// Split picks the centred walking window of every recording in a directory
// and writes a copy with that selection into the save directory. A failure
// on one file is reported and the loop moves on.
func Split(opts SplitOptions) ([]FileOutcome, error) {
	if err := requireArg(opts.Dir, "input directory"); err != nil {
		return nil, err
	}
	if err := requireArg(opts.SaveDir, "save directory"); err != nil {
		return nil, err
	}
	if opts.Percent < 0 || opts.Percent > 100 {
		return nil, fmt.Errorf("percent %d outside [0,100]", opts.Percent)
	}
	files, err := listFiles(opts.Dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.SaveDir, 0o755); err != nil {
		return nil, err
	}

	out := make([]FileOutcome, 0, len(files))
	for _, path := range files {
		res := splitFile(path, opts)
		switch {
		case res.Skipped:
			slog.Warn("split skipped", "file", path, "reason", res.Err)
		case res.Err != "":
			slog.Error("split failed", "file", path, "err", res.Err)
		default:
			slog.Info("split", "file", path, "selection", res.Selection)
		}
		out = append(out, res)
	}
	return out, nil
}

func splitFile(path string, opts SplitOptions) FileOutcome {
	res := FileOutcome{File: path}
	name, err := gait.ParseRecordingName(path)
	if err != nil {
		res.Skipped, res.Err = true, err.Error()
		return res
	}
	posture, err := name.Posture()
	if err != nil {
		res.Skipped, res.Err = true, err.Error()
		return res
	}

	t, _, err := readRecording(path, opts.Dictionary)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	seg, err := gait.Segment(t, false)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	sel, err := gait.SelectWindow(seg.Cycles, opts.Percent, posture)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Selection = sel.String()

	dst := filepath.Join(opts.SaveDir, filepath.Base(path))
	if err := writeSelection(path, dst, res.Selection); err != nil {
		res.Err = err.Error()
		return res
	}
	res.Output = dst
	return res
}
