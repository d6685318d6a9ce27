// Package evaluation classifies a child's progress against the milestones
// expected at their age and picks follow-up activities.
package evaluation

import (
	"strings"

	"nurture/internal/milestone/models"
	pstrings "nurture/pkg/platform/strings"
)

// MilestoneSource returns the milestones expected at an age, in catalog order.
// *catalog.Catalog satisfies it.
type MilestoneSource interface {
	ExpectedFor(ageMonths int) []models.Milestone
}

// Engine evaluates inputs against injected, read-only catalogs. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	milestones MilestoneSource
	activities ActivitySource
}

// NewEngine wires the catalogs. activities may be nil, in which case
// recommendations carry only the header and referral lines.
func NewEngine(milestones MilestoneSource, activities ActivitySource) *Engine {
	return &Engine{milestones: milestones, activities: activities}
}

// Evaluate is deterministic for a fixed catalog: identical inputs give
// identical results.
func (e *Engine) Evaluate(in Input) Result {
	name := strings.TrimSpace(in.ChildName)
	if name == "" {
		name = DefaultChildName
	}

	expected := e.milestones.ExpectedFor(in.AgeMonths)
	if len(expected) == 0 {
		return Result{
			Status:          StatusNoData,
			Missing:         []models.Milestone{},
			RedFlags:        []models.Milestone{},
			Recommendations: []string{},
			Message:         message(name, in.AgeMonths, StatusNoData, 0, 0, 0, 0),
		}
	}

	done := pstrings.Set(in.Completed)
	missing := make([]models.Milestone, 0, len(expected))
	redFlags := []models.Milestone{}
	for _, m := range expected {
		if _, ok := done[m.ID]; ok {
			continue
		}
		missing = append(missing, m)
		if m.RedFlag {
			redFlags = append(redFlags, m)
		}
	}

	completed := len(expected) - len(missing)
	rate := completionRate(completed, len(expected))
	status := DecideStatus(rate, len(redFlags) > 0)

	return Result{
		Status:          status,
		CompletionRate:  roundRate(rate),
		TotalExpected:   len(expected),
		TotalCompleted:  completed,
		Missing:         missing,
		RedFlags:        redFlags,
		Recommendations: Recommend(e.activities, status, missing),
		Message:         message(name, in.AgeMonths, status, rate, completed, len(expected), len(redFlags)),
	}
}
