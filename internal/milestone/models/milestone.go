// Package models defines the milestone record shared by the catalog, the
// evaluation engine and the chat responder.
package models

// Domain is a top-level developmental category.
type Domain string

const (
	DomainMotor     Domain = "motor"
	DomainLanguage  Domain = "language"
	DomainSocial    Domain = "social"
	DomainCognitive Domain = "cognitive"

	// DomainGeneral is the wildcard used by recommendation records; no
	// milestone belongs to it.
	DomainGeneral Domain = "general"
)

// IsValid reports whether d is a domain a milestone may belong to.
func (d Domain) IsValid() bool {
	switch d {
	case DomainMotor, DomainLanguage, DomainSocial, DomainCognitive:
		return true
	}
	return false
}

// String returns the wire value of the domain.
func (d Domain) String() string {
	return string(d)
}

// AgeRange is the window in months within which a milestone is usually achieved.
type AgeRange struct {
	Min     int `json:"min" yaml:"min"`
	Typical int `json:"typical" yaml:"typical"`
	Max     int `json:"max" yaml:"max"`
}

// Option is one structured-intake answer choice.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Milestone is one expected developmental achievement. Values are immutable once
// a catalog has been loaded.
type Milestone struct {
	ID          string   `json:"milestone_id"`
	AgeRange    AgeRange `json:"age_range_months"`
	Domain      Domain   `json:"domain"`
	Subdomain   string   `json:"subdomain,omitempty"`
	Description string   `json:"milestone_description"`
	RedFlag     bool     `json:"red_flag"`
	Options     []Option `json:"options"`

	ExpectedResponseType string `json:"expected_response_type,omitempty"`
	AssessmentMethod     string `json:"assessment_method,omitempty"`
	WHOCriteria          bool   `json:"who_criteria,omitempty"`
}

// InScope reports whether age falls in [Min, Max+grace].
func (m Milestone) InScope(ageMonths, grace int) bool {
	return ageMonths >= m.AgeRange.Min && ageMonths <= m.AgeRange.Max+grace
}

// PastTypical reports whether the child is older than the typical age.
func (m Milestone) PastTypical(ageMonths int) bool {
	return ageMonths > m.AgeRange.Typical
}

// PastMax reports whether the child is older than the top of the window.
func (m Milestone) PastMax(ageMonths int) bool {
	return ageMonths > m.AgeRange.Max
}

// Clone returns a deep copy so callers cannot mutate catalog-owned slices.
func (m Milestone) Clone() Milestone {
	if m.Options != nil {
		m.Options = append([]Option(nil), m.Options...)
	}
	return m
}
