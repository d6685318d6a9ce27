// Package chat turns one free-text caregiver message into a single reply by
// composing the concern extractor, the milestone catalog, the evaluation
// engine and the activity catalogs.
package chat

import (
	"fmt"
	"strings"

	"nurture/internal/concern"
	"nurture/internal/evaluation"
	"nurture/internal/milestone/models"
)

const (
	AgePrompt = "Hello! I'd be happy to help. Could you please tell me your child's age in months? " +
		"For example: 'My child is 10 months old.'"

	concernPromptFormat = "I understand your child is %d months old. Could you please tell me more about your " +
		"specific concern? For example, what milestone or behavior are you worried about?"

	activitiesPerReply = 3
)

// Milestones lists catalog milestones of one domain in catalog order.
type Milestones interface {
	InDomain(d models.Domain) []models.Milestone
}

// Evaluator runs a full evaluation.
type Evaluator interface {
	Evaluate(in evaluation.Input) evaluation.Result
}

// Activities returns the bucket activities for a milestone.
type Activities interface {
	ForMilestone(m models.Milestone, n int) []string
}

// Tips returns one randomized recommendation for a domain and age.
type Tips interface {
	Pick(domain models.Domain, ageMonths int) string
}

// Responder answers chat turns. It only reads its collaborators and is safe
// for concurrent use when they are.
type Responder struct {
	milestones Milestones
	engine     Evaluator
	activities Activities
	tips       Tips
}

// NewResponder wires the collaborators.
func NewResponder(milestones Milestones, engine Evaluator, activities Activities, tips Tips) *Responder {
	return &Responder{
		milestones: milestones,
		engine:     engine,
		activities: activities,
		tips:       tips,
	}
}

// Respond produces exactly one reply for any input; there is no error path.
func (r *Responder) Respond(req Request) Reply {
	age, ageKnown := resolveAge(req)
	if !ageKnown {
		return Reply{State: StateNeedAge, Type: ResponseNormal, Text: AgePrompt, Domain: models.DomainGeneral}
	}

	if len(req.Completed) > 0 {
		return r.evaluate(age, req.Completed)
	}

	c, ok := concern.ExtractConcern(req.Message)
	if !ok {
		return Reply{
			State:     StateNeedConcern,
			Type:      ResponseNormal,
			Text:      fmt.Sprintf(concernPromptFormat, age),
			AgeMonths: age,
			AgeKnown:  true,
			Domain:    models.DomainGeneral,
		}
	}
	return r.answer(age, c)
}

func resolveAge(req Request) (int, bool) {
	if req.AgeMonths != nil && *req.AgeMonths >= 0 {
		return *req.AgeMonths, true
	}
	return concern.ExtractAge(req.Message)
}

func (r *Responder) evaluate(age int, completed []string) Reply {
	res := r.engine.Evaluate(evaluation.Input{AgeMonths: age, Completed: completed})
	t := typeForStatus(res.Status)
	return Reply{
		State:          StateRespond,
		Type:           t,
		Text:           res.Message,
		Activities:     res.Recommendations,
		ReferralNeeded: t == ResponseRedFlag,
		AgeMonths:      age,
		AgeKnown:       true,
		Domain:         models.DomainGeneral,
	}
}

func typeForStatus(s evaluation.Status) ResponseType {
	switch s {
	case evaluation.StatusNeedsSupport:
		return ResponseConcern
	case evaluation.StatusReferralNeeded:
		return ResponseRedFlag
	default:
		return ResponseNormal
	}
}

// answer handles the single-domain path. Milestones of the concern's domain
// that have started (min <= age) are scanned in catalog order: the last one
// whose typical age has passed is the relevant one, and a red-flag milestone
// past its max age stops the scan. With none past typical, the first started
// milestone is used for reassurance.
func (r *Responder) answer(age int, c concern.Concern) Reply {
	reply := Reply{
		State:     StateRespond,
		Type:      ResponseNormal,
		AgeMonths: age,
		AgeKnown:  true,
		Topic:     c.Topic,
		Domain:    c.Domain,
	}

	var started []models.Milestone
	for _, m := range r.milestones.InDomain(c.Domain) {
		if age >= m.AgeRange.Min {
			started = append(started, m)
		}
	}

	tip := r.tips.Pick(c.Domain, age)
	if len(started) == 0 {
		reply.Text = withTip(fmt.Sprintf("Thank you for sharing your concern about your %d-month-old child's %s. "+
			"No %s milestones are expected before this age yet, so there is no need to worry.", age, c.Topic, c.Domain), tip)
		return reply
	}

	relevant := started[0]
	for _, m := range started {
		if !m.PastTypical(age) {
			continue
		}
		relevant = m
		reply.Type = ResponseConcern
		if m.RedFlag && m.PastMax(age) {
			reply.Type = ResponseRedFlag
			break
		}
	}

	switch reply.Type {
	case ResponseRedFlag:
		reply.Text = redFlagText(age, relevant)
		reply.ReferralNeeded = true
	case ResponseConcern:
		reply.Text = concernText(age, relevant)
	default:
		reply.Text = reassuranceText(age, relevant)
	}
	reply.Text = withTip(reply.Text, tip)
	reply.Activities = r.activities.ForMilestone(relevant, activitiesPerReply)
	return reply
}

func redFlagText(age int, m models.Milestone) string {
	var b strings.Builder
	b.WriteString("🏥 **Important Notice**\n\n")
	fmt.Fprintf(&b, "I understand your concern about your %d-month-old child. ", age)
	fmt.Fprintf(&b, "The milestone '%s' is typically achieved by %d months. ", m.Description, m.AgeRange.Typical)
	b.WriteString("\n\n**⚠️ This is an important developmental marker.** I strongly recommend consulting with a " +
		"health worker or pediatrician for a proper assessment. Early intervention can make a significant difference.\n\n")
	b.WriteString("**📍 Next Steps:**\n")
	b.WriteString("1. Visit your nearest Anganwadi center or health clinic\n")
	b.WriteString("2. Request a developmental screening\n")
	b.WriteString("3. Bring your child's MCP card\n\n")
	b.WriteString("In the meantime, here are some activities you can try:")
	return b.String()
}

func concernText(age int, m models.Milestone) string {
	var b strings.Builder
	b.WriteString("🌟 **Support & Guidance**\n\n")
	fmt.Fprintf(&b, "Thank you for sharing your concern about your %d-month-old child. ", age)
	fmt.Fprintf(&b, "The milestone '%s' is typically achieved around %d months, ", m.Description, m.AgeRange.Typical)
	fmt.Fprintf(&b, "though children develop at different rates (normal range: %d-%d months).\n\n", m.AgeRange.Min, m.AgeRange.Max)
	b.WriteString("**💡 Early Stimulation Activities:**\n")
	b.WriteString("Here are some activities to encourage this development:")
	return b.String()
}

func reassuranceText(age int, m models.Milestone) string {
	var b strings.Builder
	b.WriteString("✅ **Reassurance**\n\n")
	fmt.Fprintf(&b, "Your %d-month-old child is still within the normal developmental range for this milestone. ", age)
	fmt.Fprintf(&b, "Every child develops at their own pace. The typical age for '%s' is around %d months.\n\n",
		m.Description, m.AgeRange.Typical)
	b.WriteString("**🎯 Activities to Support Development:**")
	return b.String()
}

func withTip(text, tip string) string {
	if tip == "" {
		return text
	}
	return text + "\n\n💡 Tip: " + tip
}
