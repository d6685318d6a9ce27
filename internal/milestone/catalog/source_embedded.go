package catalog

import (
	"context"
	_ "embed"
)

//go:embed data/milestones.json
var defaultMilestones []byte

// EmbeddedSource serves the demonstration catalog compiled into the binary.
type EmbeddedSource struct{}

// Default returns the embedded demonstration source.
func Default() Source {
	return EmbeddedSource{}
}

func (EmbeddedSource) Name() string {
	return "embedded:milestones.json"
}

func (s EmbeddedSource) Records(ctx context.Context) ([]Record, error) {
	return DecodeRecords(s.Name(), defaultMilestones)
}

// LoadDefault loads and validates the embedded catalog.
func LoadDefault(ctx context.Context) (*Catalog, error) {
	return Load(ctx, Default())
}
