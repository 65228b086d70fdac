package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ConcatName is the file Concat writes into the save directory.
const ConcatName = "concat"

// UnionRows stacks tables by column name. Columns keep their first-seen
// order and cells a table lacks are empty.
func UnionRows(tables ...Rows) Rows {
	var out Rows
	index := map[string]int{}
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := index[c]; !ok {
				index[c] = len(out.Columns)
				out.Columns = append(out.Columns, c)
			}
		}
	}
	for _, t := range tables {
		for _, rec := range t.Records {
			row := make([]string, len(out.Columns))
			for i, c := range t.Columns {
				row[index[c]] = rec[i]
			}
			out.Records = append(out.Records, row)
		}
	}
	return out
}

// Concat merges export result files into concat.csv (or .parquet) and feeds
// every merged row to the optional sink.
func Concat(opts ConcatOptions) (*ConcatResult, error) {
	if len(opts.Files) == 0 {
		return nil, fmt.Errorf("at least one result file is required")
	}
	if err := requireArg(opts.SaveDir, "save directory"); err != nil {
		return nil, err
	}
	tables := make([]Rows, 0, len(opts.Files))
	for _, f := range opts.Files {
		rows, err := readRows(f)
		if err != nil {
			return nil, err
		}
		tables = append(tables, rows)
	}
	merged := UnionRows(tables...)
	return writeConcat(opts.SaveDir, opts.Format, opts.Sink, merged)
}

func writeConcat(saveDir string, format Format, sink RowSink, merged Rows) (*ConcatResult, error) {
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return nil, err
	}
	out := filepath.Join(saveDir, ConcatName+"."+format.extension())
	if err := writeRows(out, format, merged); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	if sink != nil {
		for _, rec := range merged.Records {
			id, err := sink.Insert(merged.Columns, rec)
			if err != nil {
				return nil, fmt.Errorf("store row: %w", err)
			}
			slog.Debug("stored result row", "id", id)
		}
	}
	return &ConcatResult{File: filepath.Base(out)}, nil
}

// ConcatStored writes every row held by src into concat.csv (or .parquet).
func ConcatStored(src RowSource, saveDir string, format Format) (*ConcatResult, error) {
	if err := requireArg(saveDir, "save directory"); err != nil {
		return nil, err
	}
	n, err := src.Count()
	if err != nil {
		return nil, fmt.Errorf("count stored rows: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("row store is empty")
	}
	columns, records, err := src.Table()
	if err != nil {
		return nil, fmt.Errorf("read stored rows: %w", err)
	}
	slog.Info("concatenating stored rows", "rows", n)
	return writeConcat(saveDir, format, nil, Rows{Columns: columns, Records: records})
}
