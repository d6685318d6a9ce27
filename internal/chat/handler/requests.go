package handler

import (
	"strings"
	"unicode/utf8"

	"nurture/internal/chat"
	dErrors "nurture/pkg/domain-errors"
	pstrings "nurture/pkg/platform/strings"
)

const (
	maxMessageRunes = 2000
	maxAgeMonths    = 240
	maxCompletedIDs = 500
)

// ChatRequest is the HTTP request body for POST /api/chat.
type ChatRequest struct {
	Message             string   `json:"message"`
	ChildAgeMonths      *int     `json:"child_age_months,omitempty"`
	CompletedMilestones []string `json:"completed_milestones,omitempty"`
}

// Normalize trims the message and deduplicates milestone IDs.
func (r *ChatRequest) Normalize() {
	if r == nil {
		return
	}
	r.Message = strings.TrimSpace(r.Message)
	r.CompletedMilestones = pstrings.DedupeAndTrim(r.CompletedMilestones)
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
// An empty message is allowed: it simply yields the age prompt.
func (r *ChatRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if utf8.RuneCountInString(r.Message) > maxMessageRunes {
		return dErrors.New(dErrors.CodeValidation, "message must be at most 2000 characters")
	}
	if len(r.CompletedMilestones) > maxCompletedIDs {
		return dErrors.New(dErrors.CodeValidation, "completed_milestones has too many entries")
	}
	if r.ChildAgeMonths != nil && (*r.ChildAgeMonths < 0 || *r.ChildAgeMonths > maxAgeMonths) {
		return dErrors.New(dErrors.CodeValidation, "child_age_months must be between 0 and 240")
	}
	return nil
}

// ToChat converts a validated request to a responder request.
func (r *ChatRequest) ToChat() chat.Request {
	return chat.Request{
		Message:   r.Message,
		AgeMonths: r.ChildAgeMonths,
		Completed: r.CompletedMilestones,
	}
}
