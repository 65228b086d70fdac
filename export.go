package gait

// Leading columns of every export row.
const (
	ColFilename  = "filename"
	ColSelection = "selection"
	ColGaitMean  = "gait mean"
	ColLSMean    = "ls mean"
	ColRSMean    = "rs mean"
	ColDBMean    = "db mean"
)

// Cell is one export value. A nil Number with an empty Text is null.
type Cell struct {
	Text   string
	Number *float64
	IsText bool
}

func (c Cell) String() string {
	if c.IsText {
		return c.Text
	}
	if c.Number == nil {
		return ""
	}
	return FormatFloat(*c.Number)
}

// ExportRow is the per-recording result row.
type ExportRow struct {
	Columns []string
	Cells   []Cell
}

// Strings renders the cells for CSV output.
func (r *ExportRow) Strings() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.String()
	}
	return out
}

// ExportColumns is the fixed export schema.
func ExportColumns() []string {
	cols := []string{ColFilename, ColSelection, ColGaitMean, ColLSMean, ColRSMean, ColDBMean}
	for p := range NumPositions {
		for v := range NumVariables {
			name := columnNames[p][v]
			for _, kind := range []string{"min", "max"} {
				for _, label := range QuantileLabels {
					cols = append(cols, name+"_"+kind+"_"+label)
				}
			}
		}
	}
	return cols
}

// BuildExportRow assembles the export row of one analysed recording.
func BuildExportRow(filename string, raw *RawData) *ExportRow {
	row := &ExportRow{Columns: ExportColumns()}
	row.Cells = make([]Cell, 0, len(row.Columns))
	row.Cells = append(row.Cells,
		Cell{Text: filename, IsText: true},
		Cell{Text: raw.Selections.String(), IsText: true},
		Cell{Number: Mean(Durations(raw.ValidCycles))},
		Cell{Number: Mean(Durations(raw.ValidLT))},
		Cell{Number: Mean(Durations(raw.ValidRT))},
		Cell{Number: Mean(Durations(raw.ValidDB))},
	)
	for p := range NumPositions {
		for v := range NumVariables {
			s := raw.Y[p][v]
			row.Cells = appendQuantile(row.Cells, s.Min)
			row.Cells = appendQuantile(row.Cells, s.Max)
		}
	}
	return row
}

func appendQuantile(cells []Cell, q *Quantile5) []Cell {
	if q == nil {
		for range QuantileLabels {
			cells = append(cells, Cell{})
		}
		return cells
	}
	for _, v := range q.Values() {
		cells = append(cells, Cell{Number: &v})
	}
	return cells
}
