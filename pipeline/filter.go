package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// Filter splits one raw export into the files the web front end loads: the
// header followed by the decoded data section, and the start/end lists of
// gait cycles and support phases. Cycles include the recording bounds so the
// indices of gait.csv are the ones Export accepts.
func Filter(opts FilterOptions) (*FilterResult, error) {
	if err := requireArg(opts.File, "csv path"); err != nil {
		return nil, err
	}
	if err := requireArg(opts.SaveDir, "save directory"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.SaveDir, 0o755); err != nil {
		return nil, err
	}

	h, _, err := gait.ReadHeader(opts.File)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	sel, err := gait.ParseSelections(h.Selection())
	if err != nil {
		if !errors.Is(err, gait.ErrBadSelection) {
			return nil, err
		}
		slog.Warn("no selection range in header", "file", opts.File, "err", err)
	}

	t, _, err := readRecording(opts.File, opts.Dictionary)
	if err != nil {
		return nil, err
	}
	seg, err := gait.Segment(t, true)
	if err != nil {
		return nil, fmt.Errorf("segment %s: %w", filepath.Base(opts.File), err)
	}

	data := t.Drop(gait.ColDB, gait.ColSG, gait.ColLTSG, gait.ColRTSG)
	if opts.WebDictionary != nil {
		if data, err = gait.Remap(data, opts.WebDictionary); err != nil {
			return nil, fmt.Errorf("web dictionary: %w", err)
		}
	}

	res := &FilterResult{
		Files: FilterFiles{
			Result: filepath.Join(opts.SaveDir, filepath.Base(opts.File)),
			Gait:   filepath.Join(opts.SaveDir, "gait.csv"),
			LT:     filepath.Join(opts.SaveDir, "ls.csv"),
			RT:     filepath.Join(opts.SaveDir, "rs.csv"),
			DB:     filepath.Join(opts.SaveDir, "db.csv"),
		},
		Range: []gait.Interval(sel),
	}
	if res.Range == nil {
		res.Range = []gait.Interval{}
	}

	if err := writeFiltered(res.Files.Result, h, data); err != nil {
		return nil, fmt.Errorf("write %s: %w", res.Files.Result, err)
	}
	for path, ivs := range map[string][]gait.Interval{
		res.Files.Gait: seg.Cycles,
		res.Files.LT:   seg.LT,
		res.Files.RT:   seg.RT,
		res.Files.DB:   seg.DB,
	} {
		if err := writeIntervals(path, ivs); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
	}
	slog.Debug("filtered recording", "file", opts.File, "cycles", len(seg.Cycles))
	return res, nil
}

// writeFiltered writes the header rows, a blank line, then the table.
func writeFiltered(path string, h *gait.Header, data *gait.Table) error {
	head, err := h.Encode()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(head); err != nil {
		return err
	}
	if _, err := io.WriteString(f, "\n"); err != nil {
		return err
	}
	if err := data.WriteCSV(f); err != nil {
		return err
	}
	return f.Close()
}
