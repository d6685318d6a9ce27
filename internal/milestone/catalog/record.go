package catalog

import "nurture/internal/milestone/models"

// Record is the wire shape of one milestone as read from a source. Pointer
// fields distinguish "absent" from a zero value so a missing red_flag or age
// bound is reported instead of silently defaulting.
type Record struct {
	ID          *string         `json:"milestone_id" yaml:"milestone_id" validate:"required,min=1,max=64"`
	AgeRange    *RecordAgeRange `json:"age_range_months" yaml:"age_range_months" validate:"required"`
	Domain      *string         `json:"domain" yaml:"domain" validate:"required,oneof=motor language social cognitive"`
	Subdomain   string          `json:"subdomain,omitempty" yaml:"subdomain,omitempty"`
	Description *string         `json:"milestone_description" yaml:"milestone_description" validate:"required,min=1"`
	RedFlag     *bool           `json:"red_flag" yaml:"red_flag" validate:"required"`
	Options     []RecordOption  `json:"options" yaml:"options" validate:"required,min=1,dive"`

	ExpectedResponseType string `json:"expected_response_type,omitempty" yaml:"expected_response_type,omitempty"`
	AssessmentMethod     string `json:"assessment_method,omitempty" yaml:"assessment_method,omitempty"`
	WHOCriteria          bool   `json:"who_criteria,omitempty" yaml:"who_criteria,omitempty"`
}

// RecordAgeRange is the age window of a Record, in months.
type RecordAgeRange struct {
	Min     *int `json:"min" yaml:"min" validate:"required,gte=0"`
	Typical *int `json:"typical" yaml:"typical" validate:"required,gte=0"`
	Max     *int `json:"max" yaml:"max" validate:"required,gte=0"`
}

// RecordOption is one answer choice of a Record.
type RecordOption struct {
	Label string `json:"label" yaml:"label" validate:"required,oneof=Yes No"`
	Value string `json:"value" yaml:"value" validate:"required,oneof=yes no"`
}

// YesNoOptions is the canonical option list used by the embedded catalog and
// the SQL source when a row stores no explicit options.
func YesNoOptions() []RecordOption {
	return []RecordOption{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}}
}

// toMilestone converts a record that has already passed validation.
func (r Record) toMilestone() models.Milestone {
	opts := make([]models.Option, len(r.Options))
	for i, o := range r.Options {
		opts[i] = models.Option{Label: o.Label, Value: o.Value}
	}
	return models.Milestone{
		ID: *r.ID,
		AgeRange: models.AgeRange{
			Min:     *r.AgeRange.Min,
			Typical: *r.AgeRange.Typical,
			Max:     *r.AgeRange.Max,
		},
		Domain:               models.Domain(*r.Domain),
		Subdomain:            r.Subdomain,
		Description:          *r.Description,
		RedFlag:              *r.RedFlag,
		Options:              opts,
		ExpectedResponseType: r.ExpectedResponseType,
		AssessmentMethod:     r.AssessmentMethod,
		WHOCriteria:          r.WHOCriteria,
	}
}

// RecordFromMilestone builds a Record from an in-memory milestone, used to run
// synthetic catalogs through the same validation as loaded ones.
func RecordFromMilestone(m models.Milestone) Record {
	id, domain, desc, red := m.ID, string(m.Domain), m.Description, m.RedFlag
	lo, typ, hi := m.AgeRange.Min, m.AgeRange.Typical, m.AgeRange.Max
	var opts []RecordOption
	if m.Options != nil {
		opts = make([]RecordOption, len(m.Options))
		for i, o := range m.Options {
			opts[i] = RecordOption{Label: o.Label, Value: o.Value}
		}
	}
	return Record{
		ID:                   &id,
		AgeRange:             &RecordAgeRange{Min: &lo, Typical: &typ, Max: &hi},
		Domain:               &domain,
		Subdomain:            m.Subdomain,
		Description:          &desc,
		RedFlag:              &red,
		Options:              opts,
		ExpectedResponseType: m.ExpectedResponseType,
		AssessmentMethod:     m.AssessmentMethod,
		WHOCriteria:          m.WHOCriteria,
	}
}
