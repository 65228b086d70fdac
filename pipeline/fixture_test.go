package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	gait "github.com/lucasjlepore/gait-analyzer"
	"github.com/lucasjlepore/gait-analyzer/internal/gaittest"
)

const (
	continuousName = "2022-11-02-17-00_101-2-8-1-[1]-1.csv"
	splitName      = "2022-11-02-17-05_101-1-8-1-[1]-2.csv"
)

func testDictionary(t *testing.T) *gait.Dictionary {
	t.Helper()
	return gaittest.WriteDictionary(t, filepath.Join(t.TempDir(), "all.csv"))
}

// writeRecording writes a raw six-stride export with the given selection.
func writeRecording(t *testing.T, dir, name, selection string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	gaittest.WriteExport(t, path, gaittest.Header(selection), gaittest.Table(t, 6), true)
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	rows, err := readRows(path)
	require.NoError(t, err)
	out := []string{joinCells(rows.Columns)}
	for _, r := range rows.Records {
		out = append(out, joinCells(r))
	}
	return out
}

func joinCells(cells []string) string {
	s := ""
	for i, c := range cells {
		if i > 0 {
			s += ","
		}
		s += c
	}
	return s
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}
