package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// RowSink receives tabular result rows, e.g. a cohort database.
type RowSink interface {
	Insert(columns, cells []string) (string, error)
}

// RowSource serves stored result rows back.
type RowSource interface {
	Count() (int, error)
	Table() (columns []string, records [][]string, err error)
	GroupCounts() (map[string]int, error)
}

// Rows is a string table with a header.
type Rows struct {
	Columns []string
	Records [][]string
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EncodeResponse renders a command response as one compact JSON line.
func EncodeResponse(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// writeRows writes rows to path as CSV or parquet.
func writeRows(path string, format Format, rows Rows) error {
	if format == FormatParquet {
		return writeRowsParquet(path, rows)
	}
	return writeRowsCSV(path, rows)
}

func writeRowsCSV(path string, rows Rows) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := encodeRowsCSV(f, rows); err != nil {
		return err
	}
	return f.Close()
}

func encodeRowsCSV(f io.Writer, rows Rows) error {
	w := csv.NewWriter(f)
	if err := w.Write(rows.Columns); err != nil {
		return err
	}
	for _, rec := range rows.Records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// marshalRows renders rows in memory.
func marshalRows(format Format, rows Rows) ([]byte, error) {
	if format == FormatParquet {
		return marshalRowsParquet(rows)
	}
	var buf bytes.Buffer
	if err := encodeRowsCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readRows reads a CSV result file. Short records are padded with empty cells.
func readRows(path string) (Rows, error) {
	f, err := os.Open(path)
	if err != nil {
		return Rows{}, err
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Rows{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return Rows{}, fmt.Errorf("read %s: %w", path, gait.ErrEmptyInput)
	}
	rows := Rows{Columns: records[0]}
	for _, rec := range records[1:] {
		for len(rec) < len(rows.Columns) {
			rec = append(rec, "")
		}
		rows.Records = append(rows.Records, rec[:len(rows.Columns)])
	}
	return rows, nil
}

func exportRows(rows ...*gait.ExportRow) Rows {
	out := Rows{Columns: gait.ExportColumns()}
	for _, r := range rows {
		out.Records = append(out.Records, r.Strings())
	}
	return out
}

// writeIntervals writes a start,end CSV.
func writeIntervals(path string, ivs []gait.Interval) error {
	t := gait.NewTable(len(ivs))
	starts := make([]float64, len(ivs))
	ends := make([]float64, len(ivs))
	for i, iv := range ivs {
		starts[i], ends[i] = iv.Start, iv.End
	}
	if err := t.SetFloats("start", starts); err != nil {
		return err
	}
	if err := t.SetFloats("end", ends); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.WriteCSV(f); err != nil {
		return err
	}
	return f.Close()
}

// readRecording reads a raw export through dict.
func readRecording(path string, dict *gait.Dictionary) (*gait.Table, gait.Preamble, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gait.Preamble{}, err
	}
	defer f.Close()
	t, pre, err := gait.ReadRecording(f, dict)
	if err != nil {
		return nil, pre, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, pre, nil
}

// listFiles returns the regular files of dir sorted by name.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func requireArg(v, what string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", what)
	}
	return nil
}
