package cohort

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndTable(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id, err := s.Insert(
		[]string{"filename", "selection", "gait mean", "db mean"},
		[]string{"2022-11-02-17-00_101-2-8-1-[1]-1.csv", "1.875-5.625", "1.25", ""},
	)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	_, err = s.Insert(
		[]string{"filename", "ls mean", "gait mean"},
		[]string{"notes.csv", "0.375", "1.5"},
	)
	require.NoError(t, err)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cols, recs, err := s.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"filename", "selection", "gait mean", "db mean", "ls mean"}, cols)
	assert.Equal(t, [][]string{
		{"2022-11-02-17-00_101-2-8-1-[1]-1.csv", "1.875-5.625", "1.25", "", ""},
		{"notes.csv", "", "1.5", "", "0.375"},
	}, recs)

	counts, err := s.GroupCounts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"101-2": 1}, counts)
}

func TestInsertRejectsBadRows(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Insert([]string{"filename"}, []string{"a", "b"})
	assert.Error(t, err)
	_, err = s.Insert([]string{"gait mean"}, []string{"1"})
	assert.Error(t, err)
	_, err = s.Insert([]string{"filename", "gait mean"}, []string{"a.csv", "fast"})
	assert.Error(t, err)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n, "failed inserts leave nothing behind")
}

func TestStorePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cohort.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	_, err = s.Insert([]string{"filename", "gait mean"}, []string{"a.csv", "1"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
