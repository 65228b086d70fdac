package gait

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Dictionary is an ordered, bijective rename from raw to canonical names.
type Dictionary struct {
	Original []string
	New      []string

	byNew map[string]int
}

// NewDictionary validates the pairs and builds the lookup index.
func NewDictionary(original, canonical []string) (*Dictionary, error) {
	if len(original) != len(canonical) {
		return nil, fmt.Errorf("%w: %d original names, %d new names", ErrBadDictionary, len(original), len(canonical))
	}
	if len(original) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrBadDictionary)
	}
	seen := make(map[string]bool, len(original))
	for _, name := range original {
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate original %q", ErrBadDictionary, name)
		}
		seen[name] = true
	}
	byNew := make(map[string]int, len(canonical))
	for i, name := range canonical {
		if _, dup := byNew[name]; dup {
			return nil, fmt.Errorf("%w: duplicate new %q", ErrBadDictionary, name)
		}
		byNew[name] = i
	}
	return &Dictionary{
		Original: append([]string(nil), original...),
		New:      append([]string(nil), canonical...),
		byNew:    byNew,
	}, nil
}

// ReadDictionary parses a CSV whose header is exactly Original,New.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrBadDictionary)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadDictionary, err)
	}
	if strings.TrimSpace(strings.TrimPrefix(header[0], "\ufeff")) != "Original" || strings.TrimSpace(header[1]) != "New" {
		return nil, fmt.Errorf("%w: header must be Original,New, got %s", ErrBadDictionary, strings.Join(header, ","))
	}
	var original, canonical []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDictionary, err)
		}
		original = append(original, strings.TrimSpace(rec[0]))
		canonical = append(canonical, strings.TrimSpace(rec[1]))
	}
	return NewDictionary(original, canonical)
}

// LoadDictionary reads a dictionary file from disk.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	d, err := ReadDictionary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (d *Dictionary) Len() int { return len(d.Original) }

// OriginalOf returns the raw name that maps to a canonical name.
func (d *Dictionary) OriginalOf(canonical string) (string, bool) {
	i, ok := d.byNew[canonical]
	if !ok {
		return "", false
	}
	return d.Original[i], true
}

// canonical reports whether names already carry every New column.
func (d *Dictionary) canonical(names []string) bool {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, n := range d.New {
		if !present[n] {
			return false
		}
	}
	return true
}

// Columns returns the raw columns to load from a file with the given
// header. Nil means the header is already canonical and every column is kept.
func (d *Dictionary) Columns(header []string) []string {
	if d.canonical(header) {
		return nil
	}
	return d.Original
}

// Remap selects the Original columns and renames them to New, in dictionary
// order. A table that already carries every New column passes through.
func Remap(t *Table, d *Dictionary) (*Table, error) {
	if d.canonical(t.Names()) {
		return t, nil
	}
	out := NewTable(t.Len())
	for i, name := range d.Original {
		c, err := t.column(name)
		if err != nil {
			return nil, err
		}
		cp := *c
		cp.name = d.New[i]
		if err := out.put(&cp, t.Len()); err != nil {
			return nil, err
		}
	}
	return out, nil
}
