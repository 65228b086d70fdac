package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// Clean copies every recording of dir into saveDir without the personal
// name fields. Files whose names do not decode are skipped.
func Clean(dir, saveDir string) ([]FileOutcome, error) {
	if err := requireArg(dir, "input directory"); err != nil {
		return nil, err
	}
	if err := requireArg(saveDir, "save directory"); err != nil {
		return nil, err
	}
	files, err := listFiles(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return nil, err
	}

	out := make([]FileOutcome, 0, len(files))
	for _, path := range files {
		name := filepath.Base(path)
		if _, err := gait.ParseRecordingName(name); err != nil {
			slog.Warn("can't parse file name, skipped", "file", name, "err", err)
			out = append(out, FileOutcome{File: path, Skipped: true, Err: err.Error()})
			continue
		}
		dst := filepath.Join(saveDir, name)
		if sameFile(path, dst) {
			err := fmt.Errorf("%s: output would overwrite the input", path)
			out = append(out, FileOutcome{File: path, Err: err.Error()})
			continue
		}
		err := gait.RewriteHeader(path, dst, func(h *gait.Header) error {
			h.Drop(gait.NameFields...)
			return nil
		})
		if err != nil {
			slog.Error("clean failed", "file", name, "err", err)
			out = append(out, FileOutcome{File: path, Err: err.Error()})
			continue
		}
		out = append(out, FileOutcome{File: path, Output: dst})
	}
	return out, nil
}
