package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gaitool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "percent: 60\nformat: parquet\ncohort_db: study.db\n"))
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Percent)
	assert.Equal(t, "parquet", cfg.Format)
	assert.Equal(t, "study.db", cfg.CohortDB)
	assert.Equal(t, "./assets/all.csv", cfg.Dictionary)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejects(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"percent": "percent: 120\n",
		"format":  "format: xlsx\n",
		"level":   "log_level: loud\n",
		"yaml":    "percent: [\n",
	} {
		_, err := Load(writeConfig(t, body))
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	l, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
	l, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}
