package gait

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Kind is the element type of a table column.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type column struct {
	name   string
	kind   Kind
	floats []float64
	ints   []int64
	bools  []bool
}

// Table is a set of equally long, labeled, typed columns.
type Table struct {
	cols   []*column
	byName map[string]int
	rows   int
}

// NewTable returns an empty table with a fixed row count.
func NewTable(rows int) *Table {
	return &Table{byName: make(map[string]int), rows: rows}
}

func (t *Table) Len() int   { return t.rows }
func (t *Table) Width() int { return len(t.cols) }

func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.name
	}
	return out
}

func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Kind reports the element type of a column.
func (t *Table) Kind(name string) (Kind, error) {
	c, err := t.column(name)
	if err != nil {
		return 0, err
	}
	return c.kind, nil
}

func (t *Table) column(name string) (*column, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, unknownColumn(name)
	}
	return t.cols[i], nil
}

func (t *Table) put(c *column, n int) error {
	if n != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.name, n, t.rows)
	}
	if i, ok := t.byName[c.name]; ok {
		t.cols[i] = c
		return nil
	}
	t.byName[c.name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// SetFloats adds or replaces a float column.
func (t *Table) SetFloats(name string, v []float64) error {
	return t.put(&column{name: name, kind: KindFloat, floats: v}, len(v))
}

// SetInts adds or replaces an integer column.
func (t *Table) SetInts(name string, v []int64) error {
	return t.put(&column{name: name, kind: KindInt, ints: v}, len(v))
}

// SetBools adds or replaces a boolean column.
func (t *Table) SetBools(name string, v []bool) error {
	return t.put(&column{name: name, kind: KindBool, bools: v}, len(v))
}

func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if c.kind != KindFloat {
		return nil, typeMismatch(name)
	}
	return c.floats, nil
}

func (t *Table) Ints(name string) ([]int64, error) {
	c, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if c.kind != KindInt {
		return nil, typeMismatch(name)
	}
	return c.ints, nil
}

func (t *Table) Bools(name string) ([]bool, error) {
	c, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if c.kind != KindBool {
		return nil, typeMismatch(name)
	}
	return c.bools, nil
}

// Select returns a table holding only the named columns, in that order.
// Column data is shared with the receiver.
func (t *Table) Select(names []string) (*Table, error) {
	out := NewTable(t.rows)
	for _, name := range names {
		c, err := t.column(name)
		if err != nil {
			return nil, err
		}
		cp := *c
		if err := out.put(&cp, t.rows); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (t *Table) Rename(from, to string) error {
	i, ok := t.byName[from]
	if !ok {
		return unknownColumn(from)
	}
	if from == to {
		return nil
	}
	if _, clash := t.byName[to]; clash {
		return fmt.Errorf("rename %q: column %q already exists", from, to)
	}
	delete(t.byName, from)
	t.byName[to] = i
	t.cols[i].name = to
	return nil
}

// Drop returns a table without the named columns. Unknown names are ignored.
func (t *Table) Drop(names ...string) *Table {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	out := NewTable(t.rows)
	for _, c := range t.cols {
		if skip[c.name] {
			continue
		}
		cp := *c
		_ = out.put(&cp, t.rows)
	}
	return out
}

// WriteCSV writes a header row followed by one record per table row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return err
	}
	record := make([]string, len(t.cols))
	for r := 0; r < t.rows; r++ {
		for i, c := range t.cols {
			switch c.kind {
			case KindFloat:
				record[i] = formatCell(c.floats[r])
			case KindInt:
				record[i] = strconv.FormatInt(c.ints[r], 10)
			case KindBool:
				record[i] = strconv.FormatBool(c.bools[r])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return FormatFloat(v)
}

// FormatFloat renders v in the shortest fixed-point form that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PreambleLines is the number of lines ahead of the table header in an export.
const PreambleLines = 3

// Preamble holds the raw lines ahead of the table header, newline included.
type Preamble [PreambleLines]string

func readPreamble(br *bufio.Reader) (Preamble, error) {
	var p Preamble
	for i := range p {
		line, err := br.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return p, fmt.Errorf("read preamble line %d: %w", i+1, io.ErrUnexpectedEOF)
			}
			return p, fmt.Errorf("read preamble line %d: %w", i+1, err)
		}
		p[i] = line
	}
	return p, nil
}

// ReadOptions controls which columns ReadTable loads.
type ReadOptions struct {
	// Columns restricts loading to these names. Nil loads every column.
	Columns []string
	// IntColumns are parsed as int64. Everything else is float64.
	IntColumns []string
}

// ReadTable reads a header row and numeric data rows. Empty float cells
// become NaN; empty integer cells become 0.
func ReadTable(r io.Reader, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read table header: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("read table header: %w", err)
	}
	header = append([]string(nil), header...)
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	want := opts.Columns
	if want == nil {
		want = header
	}
	isInt := make(map[string]bool, len(opts.IntColumns))
	for _, n := range opts.IntColumns {
		isInt[n] = true
	}

	type loader struct {
		src int
		col *column
	}
	loaders := make([]loader, 0, len(want))
	for _, name := range want {
		src, ok := index[name]
		if !ok {
			return nil, unknownColumn(name)
		}
		kind := KindFloat
		if isInt[name] {
			kind = KindInt
		}
		loaders = append(loaders, loader{src: src, col: &column{name: name, kind: kind}})
	}

	rows := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read table row %d: %w", rows+1, err)
		}
		for _, l := range loaders {
			cell := ""
			if l.src < len(rec) {
				cell = strings.TrimSpace(rec[l.src])
			}
			switch l.col.kind {
			case KindInt:
				v, err := parseIntCell(cell)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", rows+1, typeMismatch(l.col.name))
				}
				l.col.ints = append(l.col.ints, v)
			default:
				v, err := parseFloatCell(cell)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", rows+1, typeMismatch(l.col.name))
				}
				l.col.floats = append(l.col.floats, v)
			}
		}
		rows++
	}

	t := NewTable(rows)
	for _, l := range loaders {
		n := len(l.col.floats)
		if l.col.kind == KindInt {
			n = len(l.col.ints)
		}
		if err := t.put(l.col, n); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseFloatCell(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseIntCell(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int64(f), nil
}

// Wide exports carry several hundred columns; the header line must fit.
const headerBufferSize = 1 << 20

// ReadRecording reads an export: the preamble, then the table. With a
// dictionary only the columns it needs are parsed and the result is remapped
// to canonical names.
func ReadRecording(r io.Reader, dict *Dictionary) (*Table, Preamble, error) {
	br := bufio.NewReaderSize(r, headerBufferSize)
	pre, err := readPreamble(br)
	if err != nil {
		return nil, pre, err
	}
	t, err := readRecordingTable(br, dict)
	return t, pre, err
}

// readRecordingTable reads the table section that follows the preamble.
func readRecordingTable(br *bufio.Reader, dict *Dictionary) (*Table, error) {
	var columns []string
	if dict != nil {
		peek, err := peekHeader(br)
		if err != nil {
			return nil, err
		}
		columns = dict.Columns(peek)
	}
	t, err := ReadTable(br, ReadOptions{
		Columns:    columns,
		IntColumns: contactColumns(dict),
	})
	if err != nil {
		return nil, err
	}
	if dict != nil {
		return Remap(t, dict)
	}
	return t, nil
}

// ReadColumnNames returns the table header of an export without reading rows.
func ReadColumnNames(r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(r, headerBufferSize)
	if _, err := readPreamble(br); err != nil {
		return nil, err
	}
	return peekHeader(br)
}

// contactColumns lists the raw names that hold integer contact codes.
func contactColumns(dict *Dictionary) []string {
	out := []string{ColLTContact, ColRTContact}
	if dict == nil {
		return out
	}
	for _, canonical := range []string{ColLTContact, ColRTContact} {
		if orig, ok := dict.OriginalOf(canonical); ok && orig != canonical {
			out = append(out, orig)
		}
	}
	return out
}

// peekHeader parses the table header line without consuming it.
func peekHeader(br *bufio.Reader) ([]string, error) {
	var line []byte
	for n := 64; ; n *= 2 {
		b, err := br.Peek(n)
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i]
			break
		}
		if err != nil {
			if errors.Is(err, bufio.ErrBufferFull) {
				return nil, fmt.Errorf("table header exceeds %d bytes", br.Size())
			}
			if errors.Is(err, io.EOF) && len(b) > 0 {
				line = b
				break
			}
			return nil, fmt.Errorf("read table header: %w", err)
		}
	}
	rec, err := csv.NewReader(strings.NewReader(string(line))).Read()
	if err != nil {
		return nil, fmt.Errorf("parse table header: %w", err)
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	return rec, nil
}
