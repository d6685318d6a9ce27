package evaluation

import "nurture/internal/milestone/models"

// Status is the development classification of one evaluation.
type Status string

const (
	StatusOnTrack        Status = "On Track"
	StatusNeedsSupport   Status = "Needs Support"
	StatusReferralNeeded Status = "Referral Needed"
	StatusNoData         Status = "No Data"
)

// String returns the wire value of the status.
func (s Status) String() string {
	return string(s)
}

// DefaultChildName is used in messages when the caller gives no name.
const DefaultChildName = "Your child"

// Input is one evaluation request. Completed may name milestones outside the
// expected set; those are ignored.
type Input struct {
	AgeMonths int
	Completed []string
	ChildName string
}

// Result is derived per call and never stored. RedFlags is always a subset of
// Missing, and Missing a subset of the milestones expected at AgeMonths.
type Result struct {
	Status          Status
	CompletionRate  float64 // rounded to one decimal
	TotalExpected   int
	TotalCompleted  int
	Missing         []models.Milestone
	RedFlags        []models.Milestone
	Recommendations []string
	Message         string
}
