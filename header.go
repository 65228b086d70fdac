package gait

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// InfoWidth is the column count of both info header rows.
	InfoWidth = 12
	// VersionMarker must appear at VersionIndex of the first header row.
	VersionMarker = "exported with version"
	VersionIndex  = 5
	// SelectionIndex is where a raw export stores its selection string.
	SelectionIndex = 11

	FieldSelection = "selection"
	FieldLastName  = "last_name"
	FieldFirstName = "first_name"
)

// NameFields hold personal data and are stripped on every rewrite.
var NameFields = []string{FieldLastName, FieldFirstName}

// Header is the two-row key/value block at the top of an export.
type Header struct {
	Names  []string
	Values []string
}

// ParseHeader reads the first two CSV lines of an export.
func ParseHeader(pre Preamble) (*Header, error) {
	cr := csv.NewReader(strings.NewReader(pre[0] + pre[1]))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	names, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("parse header names: %w", err)
	}
	values, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("parse header values: %w", err)
	}
	return &Header{Names: names, Values: values}, nil
}

// ReadHeader reads only the preamble of the file at path.
func ReadHeader(path string) (*Header, Preamble, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Preamble{}, err
	}
	defer f.Close()
	pre, err := readPreamble(bufio.NewReader(f))
	if err != nil {
		return nil, pre, err
	}
	h, err := ParseHeader(pre)
	return h, pre, err
}

// ValidateInfo checks the fixed raw-export header layout.
func (h *Header) ValidateInfo() error {
	if len(h.Names) != InfoWidth || len(h.Values) != InfoWidth {
		return &HeaderError{Reason: "info not 12 len"}
	}
	if strings.TrimSpace(h.Names[VersionIndex]) != VersionMarker {
		return &HeaderError{Reason: fmt.Sprintf("info missing %q marker", VersionMarker)}
	}
	return nil
}

func (h *Header) index(name string) int {
	for i, n := range h.Names {
		if strings.TrimSpace(n) == name {
			return i
		}
	}
	return -1
}

func (h *Header) Has(name string) bool { return h.index(name) >= 0 }

func (h *Header) Get(name string) (string, bool) {
	i := h.index(name)
	if i < 0 || i >= len(h.Values) {
		return "", false
	}
	return h.Values[i], true
}

// Set replaces a value, appending the field when it is missing.
func (h *Header) Set(name, value string) {
	i := h.index(name)
	if i < 0 {
		h.Names = append(h.Names, name)
		h.Values = append(h.Values, value)
		return
	}
	for len(h.Values) <= i {
		h.Values = append(h.Values, "")
	}
	h.Values[i] = value
}

// Drop removes fields; missing names are ignored.
func (h *Header) Drop(names ...string) {
	for _, name := range names {
		for i := h.index(name); i >= 0; i = h.index(name) {
			h.Names = append(h.Names[:i], h.Names[i+1:]...)
			if i < len(h.Values) {
				h.Values = append(h.Values[:i], h.Values[i+1:]...)
			}
		}
	}
}

// Selection returns the selection string, by name or by its raw position.
func (h *Header) Selection() string {
	if v, ok := h.Get(FieldSelection); ok {
		return v
	}
	if len(h.Values) > SelectionIndex {
		return h.Values[SelectionIndex]
	}
	return ""
}

// Encode renders both header rows as CSV.
func (h *Header) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(h.Names); err != nil {
		return nil, err
	}
	if err := w.Write(h.Values); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// RewriteHeader copies src to dst with an edited header. The third preamble
// line and the whole table section are copied byte for byte.
func RewriteHeader(src, dst string, edit func(*Header) error) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	br := bufio.NewReader(in)
	pre, err := readPreamble(br)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	h, err := ParseHeader(pre)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if err := edit(h); err != nil {
		return err
	}
	head, err := h.Encode()
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := out.Write(head); err != nil {
		out.Close()
		return err
	}
	if _, err := io.WriteString(out, pre[2]); err != nil {
		out.Close()
		return err
	}
	if _, err := io.Copy(out, br); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
