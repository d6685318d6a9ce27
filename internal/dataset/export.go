package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// WriteDeidentified writes the manifest with every filename replaced by its
// hashed name and the original kept in an added original_filename column.
// hashed must hold one name per row, as in Outcome.Hashed.
func WriteDeidentified(w io.Writer, m *Manifest, hashed []string) error {
	if len(hashed) != len(m.Rows) {
		return errors.New("files have not been de-identified yet")
	}
	fi := m.index[ColumnFilename]

	header := append(append([]string(nil), m.Header...), ColumnOriginalFilename)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range m.Rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, row.fields...)
		rec[fi] = hashed[i]
		rec = append(rec, row.Filename)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write line %d: %w", row.Line, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveDeidentified writes the de-identified manifest to path.
func SaveDeidentified(path string, m *Manifest, hashed []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteDeidentified(f, m, hashed)
}
