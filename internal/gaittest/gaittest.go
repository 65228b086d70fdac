// Package gaittest builds synthetic recordings for tests.
package gaittest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// DT is the sample spacing of synthetic recordings; exact in binary.
const DT = 0.125

// StrideRows is the sample count of one synthetic stride.
const StrideRows = 10

// Contacts returns codes for n strides: DB DB LT LT LT DB DB RT RT RT.
func Contacts(n int) (lt, rt []int64) {
	l := []bool{true, true, true, true, true, true, true, false, false, false}
	r := []bool{true, true, false, false, false, true, true, true, true, true}
	for range n {
		for i := range StrideRows {
			lt = append(lt, code(l[i]))
			rt = append(rt, code(r[i]))
		}
	}
	return lt, rt
}

func code(on bool) int64 {
	if on {
		return gait.ContactCode
	}
	return 0
}

// Columns lists the canonical columns of a recording.
func Columns() []string {
	return append([]string{gait.ColTime, gait.ColLTContact, gait.ColRTContact}, gait.SignalColumns()...)
}

// Table builds n strides of canonical data. Signal k holds k + time.
func Table(t testing.TB, strides int) *gait.Table {
	t.Helper()
	lt, rt := Contacts(strides)
	time := make([]float64, len(lt))
	for i := range time {
		time[i] = float64(i) * DT
	}
	tb := gait.NewTable(len(time))
	require.NoError(t, tb.SetFloats(gait.ColTime, time))
	require.NoError(t, tb.SetInts(gait.ColLTContact, lt))
	require.NoError(t, tb.SetInts(gait.ColRTContact, rt))
	for k, name := range gait.SignalColumns() {
		v := make([]float64, len(time))
		for i, x := range time {
			v[i] = float64(k) + x
		}
		require.NoError(t, tb.SetFloats(name, v))
	}
	return tb
}

// Header returns a valid 12-field info header.
func Header(selection string) *gait.Header {
	return &gait.Header{
		Names: []string{
			gait.FieldLastName, gait.FieldFirstName, "birthday", "gender", "height",
			gait.VersionMarker, "weight", "device", "protocol", "note", "operator", gait.FieldSelection,
		},
		Values: []string{
			"Doe", "Jane", "1990-01-01", "F", "160",
			"3.18", "55", "MyoMotion", "walk", "", "op1", selection,
		},
	}
}

// RawPrefix is prepended to canonical names in raw files.
const RawPrefix = "raw "

// WriteDictionary writes an Original,New file mapping RawPrefix+name to name.
func WriteDictionary(t testing.TB, path string) *gait.Dictionary {
	t.Helper()
	var b strings.Builder
	b.WriteString("Original,New\n")
	for _, n := range Columns() {
		b.WriteString(csvField(RawPrefix+n) + "," + csvField(n) + "\n")
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	d, err := gait.LoadDictionary(path)
	require.NoError(t, err)
	return d
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// WriteExport writes a raw export. With raw set, table columns carry RawPrefix.
func WriteExport(t testing.TB, path string, h *gait.Header, tb *gait.Table, raw bool) {
	t.Helper()
	if raw {
		for _, n := range tb.Names() {
			require.NoError(t, tb.Rename(n, RawPrefix+n))
		}
	}
	head, err := h.Encode()
	require.NoError(t, err)
	var buf bytes.Buffer
	buf.Write(head)
	buf.WriteString("MyoMotion export\n")
	require.NoError(t, tb.WriteCSV(&buf))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}
