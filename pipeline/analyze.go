package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// Analyze analyses one recording and writes {stem}-notes.txt and
// {stem}-analysis.json into the save directory.
func Analyze(opts AnalyzeOptions) (*AnalyzeResult, error) {
	if err := requireArg(opts.File, "csv path"); err != nil {
		return nil, err
	}
	if err := requireArg(opts.SaveDir, "save directory"); err != nil {
		return nil, err
	}
	raw, err := gait.AnalyzeFile(opts.File, gait.Config{Dictionary: opts.Dictionary})
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.SaveDir, 0o755); err != nil {
		return nil, err
	}

	name := filepath.Base(opts.File)
	res := &AnalyzeResult{
		Notes:    filepath.Join(opts.SaveDir, stem(name)+"-notes.txt"),
		Analysis: filepath.Join(opts.SaveDir, stem(name)+"-analysis.json"),
	}
	if err := os.WriteFile(res.Notes, []byte(gait.BuildNotes(name, raw)), 0o644); err != nil {
		return nil, fmt.Errorf("write notes: %w", err)
	}
	if err := writeJSON(res.Analysis, raw); err != nil {
		return nil, fmt.Errorf("write analysis: %w", err)
	}
	slog.Info("analysis written", "file", name, "valid_cycles", len(raw.ValidCycles))
	return res, nil
}
