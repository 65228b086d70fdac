package pipeline

import (
	"bufio"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gait "github.com/lucasjlepore/gait-analyzer"
)

func TestFilterWritesCycleFiles(t *testing.T) {
	t.Parallel()

	src := writeRecording(t, t.TempDir(), continuousName, "1.875-5.625")
	save := filepath.Join(t.TempDir(), "out")

	res, err := Filter(FilterOptions{File: src, SaveDir: save, Dictionary: testDictionary(t)})
	require.NoError(t, err)
	assert.Equal(t, []gait.Interval{{Start: 1.875, End: 5.625}}, res.Range)
	assert.Equal(t, filepath.Join(save, continuousName), res.Files.Result)

	// Cycle list includes the recording bounds.
	assert.Equal(t, []string{
		"start,end",
		"0,0.625", "0.625,1.875", "1.875,3.125", "3.125,4.375", "4.375,5.625", "5.625,6.875", "6.875,7.375",
	}, readLines(t, res.Files.Gait))

	ls := readLines(t, res.Files.LT)
	require.Len(t, ls, 7)
	assert.Equal(t, "0.25,0.625", ls[1])
	rs := readLines(t, res.Files.RT)
	// The last right phase runs into the end of the recording and has no end.
	require.Len(t, rs, 6)
	assert.Equal(t, "0.875,1.25", rs[1])
	db := readLines(t, res.Files.DB)
	require.Len(t, db, 12)
	assert.Equal(t, "0.625,0.875", db[1])

	line, err := EncodeResponse(res)
	require.NoError(t, err)
	assert.Contains(t, line, `{"FltrFile":{"rslt":`)
	assert.Contains(t, line, `"Range":[{"Start":1.875,"End":5.625}]`)
}

func TestFilterReemitsDataThroughWebDictionary(t *testing.T) {
	t.Parallel()

	src := writeRecording(t, t.TempDir(), continuousName, "0-1")
	web, err := gait.NewDictionary(
		[]string{gait.ColTime, gait.ColLT, gait.ColRT},
		[]string{"Time (s)", "Left", "Right"},
	)
	require.NoError(t, err)

	res, err := Filter(FilterOptions{
		File:          src,
		SaveDir:       t.TempDir(),
		Dictionary:    testDictionary(t),
		WebDictionary: web,
	})
	require.NoError(t, err)

	sc := bufio.NewScanner(bytes.NewReader(readFile(t, res.Files.Result)))
	sc.Buffer(make([]byte, 0, 1<<16), 1<<20)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	require.Greater(t, len(lines), 5)
	assert.Contains(t, lines[0], gait.VersionMarker)
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Time (s),Left,Right", lines[3])
	assert.Equal(t, "0,true,true", lines[4])
	assert.Equal(t, "0.25,true,false", lines[6])
}

func TestFilterWithoutSelection(t *testing.T) {
	t.Parallel()

	src := writeRecording(t, t.TempDir(), continuousName, "")
	res, err := Filter(FilterOptions{File: src, SaveDir: t.TempDir(), Dictionary: testDictionary(t)})
	require.NoError(t, err)
	assert.Empty(t, res.Range)

	line, err := EncodeResponse(res)
	require.NoError(t, err)
	assert.Contains(t, line, `"Range":[]`)
}

func TestFilterRequiresPaths(t *testing.T) {
	t.Parallel()

	_, err := Filter(FilterOptions{SaveDir: t.TempDir()})
	assert.EqualError(t, err, "csv path is required")
	_, err = Filter(FilterOptions{File: "x.csv"})
	assert.EqualError(t, err, "save directory is required")
}
