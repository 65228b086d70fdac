package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// afterHeader returns everything past the two header rows.
func afterHeader(t *testing.T, b []byte) []byte {
	t.Helper()
	for range 2 {
		i := bytes.IndexByte(b, '\n')
		require.GreaterOrEqual(t, i, 0)
		b = b[i+1:]
	}
	return b
}

func TestSelectionWriteKeepsData(t *testing.T) {
	t.Parallel()

	src := writeRecording(t, t.TempDir(), continuousName, "0-1")
	save := filepath.Join(t.TempDir(), "clean")

	res, err := SelectionWrite(SelectionWriteOptions{File: src, SaveDir: save, Selection: "1.875-3.125 4.375-5.625"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(save, continuousName), res.File)

	h, _, err := gait.ReadHeader(res.File)
	require.NoError(t, err)
	assert.Equal(t, "1.875-3.125 4.375-5.625", h.Selection())
	assert.False(t, h.Has(gait.FieldLastName))
	assert.False(t, h.Has(gait.FieldFirstName))
	assert.Len(t, h.Names, gait.InfoWidth-2)

	assert.Equal(t, afterHeader(t, readFile(t, src)), afterHeader(t, readFile(t, res.File)))

	line, err := EncodeResponse(res)
	require.NoError(t, err)
	assert.Equal(t, `{"CleanFile":"`+res.File+`"}`, line)
}

func TestSelectionWriteRejects(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeRecording(t, dir, continuousName, "0-1")

	_, err := SelectionWrite(SelectionWriteOptions{File: src, SaveDir: t.TempDir(), Selection: "5-1"})
	assert.ErrorIs(t, err, gait.ErrBadSelection)

	_, err = SelectionWrite(SelectionWriteOptions{File: src, SaveDir: dir, Selection: "0-1"})
	assert.ErrorContains(t, err, "overwrite the input")
	_, statErr := os.Stat(src)
	assert.NoError(t, statErr)
}

func TestCleanDropsNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeRecording(t, dir, continuousName, "0-1")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x\n"), 0o644))
	save := t.TempDir()

	out, err := Clean(dir, save)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[1].Skipped, "notes.txt has no recording name")
	require.Empty(t, out[0].Err)

	h, _, err := gait.ReadHeader(out[0].Output)
	require.NoError(t, err)
	assert.False(t, h.Has(gait.FieldLastName))
	assert.Equal(t, "0-1", h.Selection())
	assert.Equal(t, afterHeader(t, readFile(t, src)), afterHeader(t, readFile(t, out[0].Output)))
}
