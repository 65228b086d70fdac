package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// BytesOptions configures AnalyzeBytes.
type BytesOptions struct {
	SourceFileName string
	Data           []byte
	Dictionary     *gait.Dictionary
	Format         string
}

// BytesResult holds generated files keyed by name.
type BytesResult struct {
	Files    map[string][]byte
	Warnings []string
}

// AnalyzeBytes analyses an export held in memory and returns the result
// row, the notes and the JSON analysis as files.
func AnalyzeBytes(opts BytesOptions) (*BytesResult, error) {
	if len(opts.Data) == 0 {
		return nil, fmt.Errorf("csv bytes are required")
	}
	name := strings.TrimSpace(opts.SourceFileName)
	if name == "" {
		name = "input.csv"
	}
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	raw, err := gait.AnalyzeReader(name, bytes.NewReader(opts.Data), gait.Config{Dictionary: opts.Dictionary})
	if err != nil {
		return nil, err
	}

	res := &BytesResult{Files: map[string][]byte{}}
	if len(raw.Selections) == 0 {
		res.Warnings = append(res.Warnings, "no usable selection in header; quantiles are empty")
	} else if len(raw.ValidCycles) == 0 {
		res.Warnings = append(res.Warnings, "no gait cycle lies inside the selection")
	}

	row, err := marshalRows(format, exportRows(gait.BuildExportRow(name, raw)))
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	s := stem(name)
	res.Files[s+"-result."+format.extension()] = row
	res.Files[s+"-notes.txt"] = []byte(gait.BuildNotes(name, raw))

	analysis, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	res.Files[s+"-analysis.json"] = analysis
	return res, nil
}
