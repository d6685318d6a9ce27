package activity

import (
	"math/rand/v2"

	"nurture/internal/milestone/models"
)

// FallbackTip is returned when no record matches the age at all.
const FallbackTip = "Please consult a health worker or pediatrician for personalized guidance on your child's development."

// Record is an age-ranged recommendation. Domain "general" matches any concern.
type Record struct {
	Domain models.Domain `yaml:"domain" json:"domain"`
	MinAge int           `yaml:"min_age" json:"min_age"`
	MaxAge int           `yaml:"max_age" json:"max_age"`
	Text   string        `yaml:"text" json:"text"`
}

// Covers reports whether the record applies at the given age (inclusive).
func (r Record) Covers(ageMonths int) bool {
	return r.MinAge <= ageMonths && ageMonths <= r.MaxAge
}

// RandSource returns a uniform integer in [0, n). It must be safe for
// concurrent use when the Picker is shared.
type RandSource func(n int) int

// Picker selects one recommendation at random. Output varies between calls;
// callers that need reproducible text use the bucket activities or
// inject a deterministic RandSource.
type Picker struct {
	records []Record
	intN    RandSource
}

// NewPicker copies records. A nil source uses math/rand/v2, which is safe for
// concurrent use.
func NewPicker(records []Record, src RandSource) *Picker {
	if src == nil {
		src = rand.IntN
	}
	return &Picker{records: append([]Record(nil), records...), intN: src}
}

// Candidates returns the records eligible for (domain, age): those of the
// domain or "general" covering the age, or, when none match, the "general"
// records covering the age.
func (p *Picker) Candidates(domain models.Domain, ageMonths int) []Record {
	var out []Record
	for _, r := range p.records {
		if (r.Domain == domain || r.Domain == models.DomainGeneral) && r.Covers(ageMonths) {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, r := range p.records {
		if r.Domain == models.DomainGeneral && r.Covers(ageMonths) {
			out = append(out, r)
		}
	}
	return out
}

// Pick returns the text of one uniformly chosen candidate, or FallbackTip.
func (p *Picker) Pick(domain models.Domain, ageMonths int) string {
	candidates := p.Candidates(domain, ageMonths)
	if len(candidates) == 0 {
		return FallbackTip
	}
	return candidates[p.intN(len(candidates))].Text
}

// Len is the number of records.
func (p *Picker) Len() int {
	return len(p.records)
}
