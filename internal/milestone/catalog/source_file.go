package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource reads a JSON or YAML list of milestone records from disk.
type FileSource struct {
	Path string
}

// NewFileSource returns a source reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return s.Path
}

func (s *FileSource) Records(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read milestone file: %w", err)
	}
	return DecodeRecords(s.Path, data)
}

// DecodeRecords decodes a milestone list. JSON documents are decoded strictly
// with encoding/json; anything else is treated as YAML. A document whose shape
// does not match the record schema (wrong types, not a list) is reported as a
// schema violation rather than a plain decode error.
func DecodeRecords(name string, data []byte) ([]Record, error) {
	var records []Record
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, decodeViolation(name, err)
		}
		return records, nil
	}
	if err := yaml.Unmarshal(trimmed, &records); err != nil {
		return nil, decodeViolation(name, err)
	}
	return records, nil
}

func decodeViolation(name string, err error) error {
	return &SchemaViolationError{
		Source:     name,
		Violations: []Violation{{Index: -1, Reason: "malformed document: " + err.Error()}},
	}
}
