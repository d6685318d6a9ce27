package handler

import (
	"nurture/internal/evaluation"
	"nurture/internal/milestone/models"
)

// EvaluateResponse is the HTTP response for POST /evaluate.
type EvaluateResponse struct {
	Result            string              `json:"result"`
	CompletionRate    float64             `json:"completion_rate"`
	TotalExpected     int                 `json:"total_expected"`
	TotalCompleted    int                 `json:"total_completed"`
	MissingMilestones []MilestoneResponse `json:"missing_milestones"`
	RedFlags          []MilestoneResponse `json:"red_flags"`
	Recommendations   []string            `json:"recommendations"`
	Message           string              `json:"message"`
}

// MilestoneResponse is the wire form of one milestone.
type MilestoneResponse struct {
	MilestoneID          string          `json:"milestone_id"`
	AgeRangeMonths       models.AgeRange `json:"age_range_months"`
	Domain               string          `json:"domain"`
	Subdomain            string          `json:"subdomain,omitempty"`
	MilestoneDescription string          `json:"milestone_description"`
	RedFlag              bool            `json:"red_flag"`
	Options              []models.Option `json:"options"`
	ExpectedResponseType string          `json:"expected_response_type,omitempty"`
	AssessmentMethod     string          `json:"assessment_method,omitempty"`
	WHOCriteria          bool            `json:"who_criteria,omitempty"`
}

// MilestonesResponse is the HTTP response for GET /milestones.
type MilestonesResponse struct {
	AgeMonths  int                 `json:"age_months"`
	Milestones []MilestoneResponse `json:"milestones"`
}

// FromResult converts an engine result to an HTTP response. Lists are never
// null on the wire.
func FromResult(result evaluation.Result) *EvaluateResponse {
	recs := result.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return &EvaluateResponse{
		Result:            result.Status.String(),
		CompletionRate:    result.CompletionRate,
		TotalExpected:     result.TotalExpected,
		TotalCompleted:    result.TotalCompleted,
		MissingMilestones: FromMilestones(result.Missing),
		RedFlags:          FromMilestones(result.RedFlags),
		Recommendations:   recs,
		Message:           result.Message,
	}
}

// FromMilestones converts milestones for the wire.
func FromMilestones(ms []models.Milestone) []MilestoneResponse {
	out := make([]MilestoneResponse, len(ms))
	for i, m := range ms {
		out[i] = MilestoneResponse{
			MilestoneID:          m.ID,
			AgeRangeMonths:       m.AgeRange,
			Domain:               m.Domain.String(),
			Subdomain:            m.Subdomain,
			MilestoneDescription: m.Description,
			RedFlag:              m.RedFlag,
			Options:              m.Options,
			ExpectedResponseType: m.ExpectedResponseType,
			AssessmentMethod:     m.AssessmentMethod,
			WHOCriteria:          m.WHOCriteria,
		}
	}
	return out
}
