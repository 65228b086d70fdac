// Package cohort keeps export rows of many recordings in a SQLite database
// so a study can be queried and re-exported as one table.
package cohort

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// schema.sql holds recordings, the ordered list of measure columns, and one
// value per recording and measure.
//
//go:embed schema.sql
var schemaSQL string

type Store struct {
	*sql.DB
}

// NewStore opens or creates the database at path. ":memory:" is allowed.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps an in-memory database alive and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply cohort schema: %w", err)
	}
	slog.Debug("opened cohort database", "path", path)
	return &Store{db}, nil
}

// Insert stores one export row and returns its recording id. Every column
// except filename and selection must hold a number or be empty.
func (s *Store) Insert(columns, cells []string) (string, error) {
	if len(columns) != len(cells) {
		return "", fmt.Errorf("row has %d cells for %d columns", len(cells), len(columns))
	}
	var filename, selection string
	measures := make([]string, 0, len(columns))
	values := make([]sql.NullFloat64, 0, len(columns))
	for i, c := range columns {
		switch c {
		case gait.ColFilename:
			filename = cells[i]
		case gait.ColSelection:
			selection = cells[i]
		default:
			v := sql.NullFloat64{}
			if cells[i] != "" {
				f, err := strconv.ParseFloat(cells[i], 64)
				if err != nil {
					return "", fmt.Errorf("column %q: %w", c, err)
				}
				v = sql.NullFloat64{Float64: f, Valid: true}
			}
			measures = append(measures, c)
			values = append(values, v)
		}
	}
	if filename == "" {
		return "", fmt.Errorf("row has no %s", gait.ColFilename)
	}

	var user, posture sql.NullString
	if name, err := gait.ParseRecordingName(filename); err == nil {
		user = sql.NullString{String: name.User(), Valid: true}
		posture = sql.NullString{String: name.PostureToken(), Valid: true}
	}

	id := uuid.NewString()
	tx, err := s.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO recordings (recording_id, filename, selection, user_id, posture) VALUES (?, ?, ?, ?, ?)`,
		id, filename, selection, user, posture,
	); err != nil {
		return "", fmt.Errorf("failed to insert recording: %v", err)
	}
	for i, m := range measures {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO measures (name, ordinal) VALUES (?, (SELECT COALESCE(MAX(ordinal), -1) + 1 FROM measures))`,
			m,
		); err != nil {
			return "", fmt.Errorf("failed to register measure %q: %v", m, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO measurements (recording_id, measure, value) VALUES (?, ?, ?)`,
			id, m, values[i],
		); err != nil {
			return "", fmt.Errorf("failed to insert measurement %q: %v", m, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Count returns the number of stored recordings.
func (s *Store) Count() (int, error) {
	var n int
	err := s.QueryRow(`SELECT COUNT(*) FROM recordings`).Scan(&n)
	return n, err
}

// Table reassembles the wide rows in insertion order. Columns are filename,
// selection, then every measure in the order it was first seen.
func (s *Store) Table() (columns []string, records [][]string, err error) {
	columns = []string{gait.ColFilename, gait.ColSelection}
	pos := map[string]int{}
	mrows, err := s.Query(`SELECT name FROM measures ORDER BY ordinal`)
	if err != nil {
		return nil, nil, err
	}
	for mrows.Next() {
		var name string
		if err := mrows.Scan(&name); err != nil {
			mrows.Close()
			return nil, nil, err
		}
		pos[name] = len(columns)
		columns = append(columns, name)
	}
	mrows.Close()
	if err := mrows.Err(); err != nil {
		return nil, nil, err
	}

	index := map[string]int{}
	rrows, err := s.Query(`SELECT recording_id, filename, selection FROM recordings ORDER BY rowid`)
	if err != nil {
		return nil, nil, err
	}
	for rrows.Next() {
		var id, filename, selection string
		if err := rrows.Scan(&id, &filename, &selection); err != nil {
			rrows.Close()
			return nil, nil, err
		}
		rec := make([]string, len(columns))
		rec[0], rec[1] = filename, selection
		index[id] = len(records)
		records = append(records, rec)
	}
	rrows.Close()
	if err := rrows.Err(); err != nil {
		return nil, nil, err
	}

	vrows, err := s.Query(`SELECT recording_id, measure, value FROM measurements`)
	if err != nil {
		return nil, nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var id, measure string
		var v sql.NullFloat64
		if err := vrows.Scan(&id, &measure, &v); err != nil {
			return nil, nil, err
		}
		if v.Valid {
			records[index[id]][pos[measure]] = gait.FormatFloat(v.Float64)
		}
	}
	return columns, records, vrows.Err()
}

// GroupCounts counts stored recordings per user and posture.
func (s *Store) GroupCounts() (map[string]int, error) {
	rows, err := s.Query(`
		SELECT user_id || '-' || posture, COUNT(*)
		FROM recordings
		WHERE user_id IS NOT NULL
		GROUP BY user_id, posture
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}
