// Package dataset manages the annotated child-development video manifest:
// reading it, de-identifying file names with a salted hash, summarizing it and
// exporting the de-identified manifest.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Required manifest columns.
const (
	ColumnFilename    = "filename"
	ColumnChildAge    = "child_age"
	ColumnMilestoneID = "milestone_id"
	ColumnLabel       = "label"

	ColumnOriginalFilename = "original_filename"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("manifest column missing")

// Row is one annotated video. Empty cells are kept empty; Summarize counts them.
type Row struct {
	Line        int // 1-based line in the source, header included
	Filename    string
	ChildAge    int
	HasAge      bool
	AgeRaw      string
	MilestoneID string
	Label       string

	fields []string
}

// Manifest is a parsed manifest. The header and every cell are kept so the
// de-identified export reproduces all columns.
type Manifest struct {
	Header   []string
	Rows     []Row
	HasLabel bool

	index map[string]int
}

// ReadManifest parses a CSV manifest. A non-numeric child_age is an error; an
// empty one is recorded as missing.
func ReadManifest(r io.Reader) (*Manifest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read manifest header: %w", err)
	}

	m := &Manifest{Header: make([]string, len(header)), index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		m.Header[i] = h
		m.index[h] = i
	}
	for _, col := range []string{ColumnFilename, ColumnChildAge, ColumnMilestoneID} {
		if _, ok := m.index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	_, m.HasLabel = m.index[ColumnLabel]

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read manifest line %d: %w", line, err)
		}
		row, err := m.parseRow(line, rec)
		if err != nil {
			return nil, err
		}
		m.Rows = append(m.Rows, row)
	}
	return m, nil
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return ReadManifest(f)
}

func (m *Manifest) parseRow(line int, rec []string) (Row, error) {
	fields := make([]string, len(m.Header))
	copy(fields, rec)

	row := Row{
		Line:        line,
		Filename:    strings.TrimSpace(m.cell(fields, ColumnFilename)),
		AgeRaw:      strings.TrimSpace(m.cell(fields, ColumnChildAge)),
		MilestoneID: strings.TrimSpace(m.cell(fields, ColumnMilestoneID)),
		Label:       strings.TrimSpace(m.cell(fields, ColumnLabel)),
		fields:      fields,
	}
	if row.AgeRaw != "" {
		age, err := parseAge(row.AgeRaw)
		if err != nil {
			return Row{}, fmt.Errorf("manifest line %d: child_age %q: %w", line, row.AgeRaw, err)
		}
		row.ChildAge, row.HasAge = age, true
	}
	return row, nil
}

// parseAge accepts integers and whole floats ("12.0"), as spreadsheet exports
// often write them.
func parseAge(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, errors.New("not a whole number of months")
	}
	return int(f), nil
}

func (m *Manifest) cell(fields []string, col string) string {
	i, ok := m.index[col]
	if !ok || i >= len(fields) {
		return ""
	}
	return fields[i]
}
