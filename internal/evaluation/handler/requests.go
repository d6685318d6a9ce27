package handler

import (
	"strings"

	"nurture/internal/evaluation"
	dErrors "nurture/pkg/domain-errors"
	pstrings "nurture/pkg/platform/strings"
)

const (
	maxAgeMonths       = 240
	maxCompletedIDs    = 500
	maxChildNameLength = 100
)

// EvaluateRequest is the HTTP request body for POST /evaluate.
type EvaluateRequest struct {
	ChildAgeMonths      *int     `json:"child_age_months"`
	CompletedMilestones []string `json:"completed_milestones"`
	ChildName           string   `json:"child_name,omitempty"`
}

// Normalize trims the name and deduplicates milestone IDs.
func (r *EvaluateRequest) Normalize() {
	if r == nil {
		return
	}
	r.ChildName = strings.TrimSpace(r.ChildName)
	r.CompletedMilestones = pstrings.DedupeAndTrim(r.CompletedMilestones)
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	if len(r.CompletedMilestones) > maxCompletedIDs {
		return dErrors.New(dErrors.CodeValidation, "completed_milestones has too many entries")
	}
	if len(r.ChildName) > maxChildNameLength {
		return dErrors.New(dErrors.CodeValidation, "child_name must be at most 100 characters")
	}

	if r.ChildAgeMonths == nil {
		return dErrors.New(dErrors.CodeValidation, "child_age_months is required")
	}
	if *r.ChildAgeMonths < 0 || *r.ChildAgeMonths > maxAgeMonths {
		return dErrors.New(dErrors.CodeValidation, "child_age_months must be between 0 and 240")
	}
	return nil
}

// Input converts a validated request to an engine input.
func (r *EvaluateRequest) Input() evaluation.Input {
	return evaluation.Input{
		AgeMonths: *r.ChildAgeMonths,
		Completed: r.CompletedMilestones,
		ChildName: r.ChildName,
	}
}
