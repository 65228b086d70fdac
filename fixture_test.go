package gait

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Sample spacing used by the synthetic walks; exact in binary.
const testDT = 0.125

// strideContacts returns contact codes for n strides of ten samples:
// DB DB LT LT LT DB DB RT RT RT.
func strideContacts(n int) (lt, rt []int64) {
	pattern := []struct{ l, r bool }{
		{true, true}, {true, true},
		{true, false}, {true, false}, {true, false},
		{true, true}, {true, true},
		{false, true}, {false, true}, {false, true},
	}
	for range n {
		for _, p := range pattern {
			lt = append(lt, code(p.l))
			rt = append(rt, code(p.r))
		}
	}
	return lt, rt
}

func code(on bool) int64 {
	if on {
		return ContactCode
	}
	return 0
}

func sampleTimes(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * testDT
	}
	return out
}

// syntheticTable builds a canonical table. Signal k holds k + sin-free ramp
// values so per-cycle extremes are the window edges.
func syntheticTable(t testing.TB, time []float64, lt, rt []int64) *Table {
	t.Helper()
	tb := NewTable(len(time))
	require.NoError(t, tb.SetFloats(ColTime, time))
	require.NoError(t, tb.SetInts(ColLTContact, lt))
	require.NoError(t, tb.SetInts(ColRTContact, rt))
	for k, name := range SignalColumns() {
		v := make([]float64, len(time))
		for i, x := range time {
			v[i] = float64(k) + x
		}
		require.NoError(t, tb.SetFloats(name, v))
	}
	return tb
}

func rawInfoHeader(selection string) *Header {
	return &Header{
		Names: []string{
			FieldLastName, FieldFirstName, "birthday", "gender", "height",
			VersionMarker, "weight", "device", "protocol", "note", "operator", FieldSelection,
		},
		Values: []string{
			"Doe", "Jane", "1990-01-01", "F", "160",
			"3.18", "55", "MyoMotion", "walk", "", "op1", selection,
		},
	}
}

// writeExport writes a raw export: info header, banner line, table.
func writeExport(t testing.TB, path string, h *Header, tb *Table) {
	t.Helper()
	head, err := h.Encode()
	require.NoError(t, err)
	var buf bytes.Buffer
	buf.Write(head)
	buf.WriteString("MyoMotion export\n")
	require.NoError(t, tb.WriteCSV(&buf))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// prefixDictionary maps "raw "+name to every canonical column it lists.
func prefixDictionary(t testing.TB, names []string) *Dictionary {
	t.Helper()
	orig := make([]string, len(names))
	for i, n := range names {
		orig[i] = "raw " + n
	}
	d, err := NewDictionary(orig, names)
	require.NoError(t, err)
	return d
}

func renamedCopy(t testing.TB, tb *Table, d *Dictionary) *Table {
	t.Helper()
	out := NewTable(tb.Len())
	for i, canonical := range d.New {
		c, err := tb.column(canonical)
		require.NoError(t, err)
		cp := *c
		cp.name = d.Original[i]
		require.NoError(t, out.put(&cp, tb.Len()))
	}
	return out
}

func canonicalColumns() []string {
	return append([]string{ColTime, ColLTContact, ColRTContact}, SignalColumns()...)
}
