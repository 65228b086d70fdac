package gait

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFileEndToEnd(t *testing.T) {
	t.Parallel()

	lt, rt := strideContacts(6)
	canonical := syntheticTable(t, sampleTimes(len(lt)), lt, rt)
	d := prefixDictionary(t, canonicalColumns())
	path := filepath.Join(t.TempDir(), "2022-11-02-17-00_101-2-8-1-[1]-1.csv")
	// Cycles start at 0.625 and last 1.25 s; select the middle three.
	writeExport(t, path, rawInfoHeader("1.875-5.625"), renamedCopy(t, canonical, d))

	raw, err := AnalyzeFile(path, Config{Dictionary: d})
	require.NoError(t, err)

	assert.Len(t, raw.Cycles, 5)
	assert.Equal(t, []Interval{{1.875, 3.125}, {3.125, 4.375}, {4.375, 5.625}}, raw.ValidCycles)
	require.NotNil(t, raw.Gait.Durations)
	assert.Equal(t, Quantile5{1.25, 1.25, 1.25, 1.25, 1.25}, *raw.Gait.Durations)
	require.NotNil(t, raw.DB)
	assert.Equal(t, 0.25, raw.DB.Median)
	require.NotNil(t, raw.LT)
	assert.Equal(t, 0.375, raw.LT.Max)
	assert.Equal(t, lt, raw.LContact)

	// Signal k is k + time, so the per-cycle minimum is k + cycle start.
	k := float64(int(PosKneeLT)*NumVariables + int(Pitch))
	s := raw.Signal(PosKneeLT, Pitch)
	require.NotNil(t, s.Min)
	assert.Equal(t, k+1.875, s.Min.Min)
	assert.Equal(t, k+4.375, s.Min.Max)
	assert.Equal(t, k+3.125-testDT, s.Max.Min)

	notes := BuildNotes(filepath.Base(path), raw)
	assert.Contains(t, notes, "Cycles 5 detected / 3 valid")
	assert.Contains(t, notes, "Selection: 1.875-5.625")
}

func TestAnalyzeFileBadSelectionYieldsNullQuantiles(t *testing.T) {
	t.Parallel()

	lt, rt := strideContacts(3)
	path := filepath.Join(t.TempDir(), "rec.csv")
	writeExport(t, path, rawInfoHeader("not-a-range"), syntheticTable(t, sampleTimes(len(lt)), lt, rt))

	raw, err := AnalyzeFile(path, Config{})
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Cycles)
	assert.Empty(t, raw.ValidCycles)
	assert.Nil(t, raw.Gait.Durations)
	assert.Nil(t, raw.DB)
	for _, p := range AllPositions() {
		for _, v := range AllVariables() {
			assert.Nil(t, raw.Signal(p, v).Min)
			assert.Nil(t, raw.Signal(p, v).Max)
		}
	}
	assert.True(t, strings.Contains(BuildNotes("rec", raw), "Selection: none"))
}

func TestAnalyzeFileBadHeader(t *testing.T) {
	t.Parallel()

	lt, rt := strideContacts(1)
	h := rawInfoHeader("0-1")
	h.Names = h.Names[:11]
	path := filepath.Join(t.TempDir(), "rec.csv")
	writeExport(t, path, h, syntheticTable(t, sampleTimes(len(lt)), lt, rt))

	_, err := AnalyzeFile(path, Config{})
	require.ErrorIs(t, err, ErrBadHeader)
	assert.Equal(t, "info not 12 len", err.Error())
}

func TestAnalyzeMissingSignal(t *testing.T) {
	t.Parallel()

	lt, rt := strideContacts(2)
	tb := syntheticTable(t, sampleTimes(len(lt)), lt, rt).Drop(ColumnName(Roll, PosT))
	_, err := Analyze(tb, Selections{{0, 100}})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestAnalyzeRejectsDecreasingTime(t *testing.T) {
	t.Parallel()

	lt, rt := strideContacts(1)
	time := sampleTimes(len(lt))
	time[4], time[5] = time[5], time[4]
	_, err := Analyze(syntheticTable(t, time, lt, rt), nil)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestAnalyzeRejectsMissingTime(t *testing.T) {
	t.Parallel()

	lt, rt := strideContacts(1)
	time := sampleTimes(len(lt))
	// An empty time cell reads as NaN and would compare as ordered.
	time[4] = math.NaN()
	_, err := Analyze(syntheticTable(t, time, lt, rt), nil)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	var ce *ColumnError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ColTime, ce.Column)
}

func TestAnalyzeReaderMatchesAnalyzeFile(t *testing.T) {
	t.Parallel()

	lt, rt := strideContacts(6)
	canonical := syntheticTable(t, sampleTimes(len(lt)), lt, rt)
	d := prefixDictionary(t, canonicalColumns())
	path := filepath.Join(t.TempDir(), "2022-11-02-17-00_101-2-8-1-[1]-1.csv")
	writeExport(t, path, rawInfoHeader("1.875-5.625"), renamedCopy(t, canonical, d))

	fromFile, err := AnalyzeFile(path, Config{Dictionary: d})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fromReader, err := AnalyzeReader("upload.csv", bytes.NewReader(data), Config{Dictionary: d})
	require.NoError(t, err)

	assert.Equal(t, fromFile.ValidCycles, fromReader.ValidCycles)
	assert.Equal(t, fromFile.Gait, fromReader.Gait)
	assert.Equal(t, fromFile.DB, fromReader.DB)
}
