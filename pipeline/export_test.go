package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gait "github.com/lucasjlepore/gait-analyzer"
)

func TestRangeSelections(t *testing.T) {
	t.Parallel()

	cycles := []gait.Interval{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}, {Start: 3, End: 4}}
	sel, err := RangeSelections(cycles, []Range{{0, 1}, {1, 4}})
	require.NoError(t, err)
	if diff := cmp.Diff(gait.Selections{{Start: 0, End: 1}, {Start: 1, End: 4}}, sel); diff != "" {
		t.Fatalf("selections mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "0-1 1-4", sel.String())

	for _, bad := range [][]Range{nil, {{2, 2}}, {{-1, 1}}, {{3, 5}}} {
		_, err := RangeSelections(cycles, bad)
		assert.ErrorIs(t, err, gait.ErrBadSelection, "%v", bad)
	}
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	r, err := ParseRange(" 1  12 ")
	require.NoError(t, err)
	assert.Equal(t, Range{From: 1, To: 12}, r)

	for _, bad := range []string{"", "1", "1 2 3", "a 2"} {
		_, err := ParseRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestExportWritesResultRow(t *testing.T) {
	t.Parallel()

	src := writeRecording(t, t.TempDir(), continuousName, "0-1")
	save := t.TempDir()

	// Bounded cycles 2..4 span 1.875-5.625.
	res, err := Export(ExportOptions{
		File:       src,
		SaveDir:    save,
		Ranges:     []Range{{From: 2, To: 5}},
		Dictionary: testDictionary(t),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(save, "2022-11-02-17-00_101-2-8-1-[1]-1-result.csv"), res.File)

	rows, err := readRows(res.File)
	require.NoError(t, err)
	assert.Equal(t, gait.ExportColumns(), rows.Columns)
	require.Len(t, rows.Records, 1)
	rec := rows.Records[0]
	assert.Equal(t, []string{continuousName, "1.875-5.625", "1.25", "0.375", "0.375", "0.25", "1.875"}, rec[:7])

	line, err := EncodeResponse(res)
	require.NoError(t, err)
	assert.Equal(t, `{"ExportFile":"`+res.File+`"}`, line)
}

func TestExportTwoRangesParquet(t *testing.T) {
	t.Parallel()

	src := writeRecording(t, t.TempDir(), continuousName, "0-1")
	res, err := Export(ExportOptions{
		File:       src,
		SaveDir:    t.TempDir(),
		Ranges:     []Range{{1, 2}, {4, 6}},
		Dictionary: testDictionary(t),
		Format:     FormatParquet,
	})
	require.NoError(t, err)
	assert.Equal(t, ".parquet", filepath.Ext(res.File))
	b := readFile(t, res.File)
	assert.Equal(t, "PAR1", string(b[:4]))
	assert.Equal(t, "PAR1", string(b[len(b)-4:]))
}

func TestExportRejectsRangeOutsideCycles(t *testing.T) {
	t.Parallel()

	src := writeRecording(t, t.TempDir(), continuousName, "0-1")
	_, err := Export(ExportOptions{
		File:       src,
		SaveDir:    t.TempDir(),
		Ranges:     []Range{{From: 5, To: 8}},
		Dictionary: testDictionary(t),
	})
	assert.ErrorIs(t, err, gait.ErrBadSelection)
}
