package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Catalog sources, stores and dataset
// readers return these (optionally wrapped) so callers can translate them into
// domain errors.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrEmptySource = errors.New("empty source")
	ErrUnavailable = errors.New("unavailable")
)
