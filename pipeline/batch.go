package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	gait "github.com/lucasjlepore/gait-analyzer"
	"github.com/lucasjlepore/gait-analyzer/batch"
)

// WriteBatch writes one result file per analysed recording and the
// concatenation of all of them.
func WriteBatch(runID string, results []batch.DataInfo, opts BatchOptions) (*BatchResult, error) {
	if err := requireArg(opts.SaveDir, "save directory"); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("batch produced no results")
	}
	if err := os.MkdirAll(opts.SaveDir, 0o755); err != nil {
		return nil, err
	}

	res := &BatchResult{RunID: runID}
	rows := make([]*gait.ExportRow, 0, len(results))
	for _, info := range results {
		row := gait.BuildExportRow(info.Name, info.Data)
		out := filepath.Join(opts.SaveDir, fmt.Sprintf("%s-result.%s", stem(info.Name), opts.Format.extension()))
		if err := writeRows(out, opts.Format, exportRows(row)); err != nil {
			return nil, fmt.Errorf("write %s: %w", out, err)
		}
		res.Exports = append(res.Exports, out)
		rows = append(rows, row)
	}
	c, err := writeConcat(opts.SaveDir, opts.Format, opts.Sink, exportRows(rows...))
	if err != nil {
		return nil, err
	}
	res.Concat = c.File
	return res, nil
}
