package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// Format selects the file type of tabular outputs.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ParseFormat accepts csv or parquet; empty means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatParquet:
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected csv|parquet)", s)
	}
}

func (f Format) extension() string {
	if f == FormatParquet {
		return "parquet"
	}
	return "csv"
}

// FilterOptions configures Filter.
type FilterOptions struct {
	File    string
	SaveDir string
	// Dictionary maps raw export columns to canonical names.
	Dictionary *gait.Dictionary
	// WebDictionary maps canonical names to the labels of the re-emitted
	// data section. Nil keeps canonical names.
	WebDictionary *gait.Dictionary
}

// FilterFiles lists the files written by Filter.
type FilterFiles struct {
	Result string `json:"rslt"`
	Gait   string `json:"cyGt"`
	LT     string `json:"cyLt"`
	RT     string `json:"cyRt"`
	DB     string `json:"cyDb"`
}

// FilterResult is the response of Filter.
type FilterResult struct {
	Files FilterFiles     `json:"FltrFile"`
	Range []gait.Interval `json:"Range"`
}

// Range is a half-open index range [From, To) into the gait cycle list
// written by Filter.
type Range struct {
	From int
	To   int
}

// ParseRange reads "i j".
func ParseRange(s string) (Range, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Range{}, fmt.Errorf("range %q: want two indices", s)
	}
	from, err := strconv.Atoi(fields[0])
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	to, err := strconv.Atoi(fields[1])
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	return Range{From: from, To: to}, nil
}

// ExportOptions configures Export.
type ExportOptions struct {
	File       string
	SaveDir    string
	Ranges     []Range
	Dictionary *gait.Dictionary
	Format     Format
}

// ExportResult is the response of Export.
type ExportResult struct {
	File string `json:"ExportFile"`
}

// SelectionWriteOptions configures SelectionWrite.
type SelectionWriteOptions struct {
	File      string
	SaveDir   string
	Selection string
}

// SelectionWriteResult is the response of SelectionWrite.
type SelectionWriteResult struct {
	File string `json:"CleanFile"`
}

// ConcatOptions configures Concat.
type ConcatOptions struct {
	Files   []string
	SaveDir string
	Format  Format
	// Sink, when set, also receives every concatenated row.
	Sink RowSink
}

// ConcatResult is the response of Concat.
type ConcatResult struct {
	File string `json:"ConcatFile"`
}

// SplitOptions configures Split.
type SplitOptions struct {
	Dir        string
	SaveDir    string
	Percent    int
	Dictionary *gait.Dictionary
}

// FileOutcome reports one file of a directory operation.
type FileOutcome struct {
	File      string `json:"file"`
	Output    string `json:"output,omitempty"`
	Selection string `json:"selection,omitempty"`
	Skipped   bool   `json:"skipped,omitempty"`
	Err       string `json:"error,omitempty"`
}

// CheckFinding lists the header problems of one file.
type CheckFinding struct {
	File     string   `json:"file"`
	Problems []string `json:"problems"`
}

// CheckReport is the response of Check.
type CheckReport struct {
	Findings []CheckFinding `json:"findings"`
	Skipped  []string       `json:"skipped"`
	Counts   map[string]int `json:"counts"`
	// Stored counts the recordings per user and posture in a row store.
	Stored map[string]int `json:"stored,omitempty"`
}

// DiffLine is one removed or added column name.
type DiffLine struct {
	Sign     string `json:"sign"`
	OldIndex *int   `json:"old_index,omitempty"`
	NewIndex *int   `json:"new_index,omitempty"`
	Text     string `json:"text"`
}

// BatchOptions configures the export written after a batch run.
type BatchOptions struct {
	SaveDir string
	Format  Format
	Sink    RowSink
}

// BatchResult is the response of a batch export.
type BatchResult struct {
	RunID   string   `json:"run_id"`
	Exports []string `json:"exports"`
	Concat  string   `json:"ConcatFile"`
}

// AnalyzeOptions configures Analyze.
type AnalyzeOptions struct {
	File       string
	SaveDir    string
	Dictionary *gait.Dictionary
}

// AnalyzeResult is the response of Analyze.
type AnalyzeResult struct {
	Notes    string `json:"NotesFile"`
	Analysis string `json:"AnalysisFile"`
}
