// Package catalog loads, validates and serves the immutable milestone catalog.
//
// A catalog is built once from a Source. Every record is validated and any
// violation aborts the whole load: callers either get a complete catalog or a
// *SchemaViolationError, never a partial view.
package catalog

import (
	"context"
	"fmt"

	"nurture/internal/milestone/models"
	"nurture/pkg/platform/sentinel"
)

// Grace is how many months past a milestone's max age it stays expected, so a
// late milestone is reported as missing instead of dropping out of scope.
const Grace = 6

// Source yields milestone records in their canonical order.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]Record, error)
}

// Catalog is a read-only, insertion-ordered set of milestones. It is safe for
// concurrent use because nothing mutates it after Load returns.
type Catalog struct {
	milestones []models.Milestone
	byID       map[string]int
}

// Load reads and validates every record from src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("read milestones from %s: %w", src.Name(), err)
	}
	return build(src.Name(), records)
}

// New builds a catalog from in-memory milestones, applying the same validation
// as Load.
func New(milestones ...models.Milestone) (*Catalog, error) {
	records := make([]Record, len(milestones))
	for i, m := range milestones {
		records[i] = RecordFromMilestone(m)
	}
	return build("inline", records)
}

func build(name string, records []Record) (*Catalog, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", name, sentinel.ErrEmptySource)
	}
	if violations := validateRecords(records); len(violations) > 0 {
		return nil, &SchemaViolationError{Source: name, Violations: violations}
	}

	c := &Catalog{
		milestones: make([]models.Milestone, len(records)),
		byID:       make(map[string]int, len(records)),
	}
	for i, r := range records {
		m := r.toMilestone()
		c.milestones[i] = m
		c.byID[m.ID] = i
	}
	return c, nil
}

// ExpectedFor returns every milestone with min <= age <= max+Grace, in source
// order. Callers that need a priority order must sort the result themselves.
func (c *Catalog) ExpectedFor(ageMonths int) []models.Milestone {
	var out []models.Milestone
	for _, m := range c.milestones {
		if m.InScope(ageMonths, Grace) {
			out = append(out, m.Clone())
		}
	}
	return out
}

// InDomain returns the milestones of one domain in source order.
func (c *Catalog) InDomain(d models.Domain) []models.Milestone {
	var out []models.Milestone
	for _, m := range c.milestones {
		if m.Domain == d {
			out = append(out, m.Clone())
		}
	}
	return out
}

// Get returns the milestone with the given id.
func (c *Catalog) Get(id string) (models.Milestone, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Milestone{}, fmt.Errorf("milestone %q: %w", id, sentinel.ErrNotFound)
	}
	return c.milestones[i].Clone(), nil
}

// All returns a copy of every milestone in source order.
func (c *Catalog) All() []models.Milestone {
	out := make([]models.Milestone, len(c.milestones))
	for i, m := range c.milestones {
		out[i] = m.Clone()
	}
	return out
}

// Len is the number of milestones in the catalog.
func (c *Catalog) Len() int {
	return len(c.milestones)
}

// Domains lists the distinct domains in first-seen order.
func (c *Catalog) Domains() []models.Domain {
	seen := make(map[models.Domain]struct{})
	var out []models.Domain
	for _, m := range c.milestones {
		if _, ok := seen[m.Domain]; !ok {
			seen[m.Domain] = struct{}{}
			out = append(out, m.Domain)
		}
	}
	return out
}
