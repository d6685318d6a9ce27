package evaluation

import "nurture/internal/milestone/models"

const (
	EncouragementLine = "🎉 Great progress! Continue with these enrichment activities:"
	FocusLine         = "💡 Focus on these activities to support development:"
	ReferralLine      = "⚠️ IMPORTANT: Please consult with a health worker or pediatrician for a comprehensive assessment."

	// MaxRecommendations caps the list, header and referral lines included.
	MaxRecommendations = 8

	enrichmentPerDomain = 2
	focusPerDomain      = 3
)

// enrichmentDomains are visited in this order for children on track.
var enrichmentDomains = []models.Domain{models.DomainMotor, models.DomainLanguage, models.DomainSocial}

// ActivitySource exposes the first activity bucket of each domain.
// *activity.Catalog satisfies it.
type ActivitySource interface {
	FirstBucket(domain models.Domain) ([]string, bool)
}

// Recommend builds the deterministic recommendation list for a status.
//
// On track children get an encouragement line and two activities from the
// first bucket of motor, language and social. Everyone else gets a focus line
// and three activities from the first bucket of each domain with missing
// milestones. Referrals end with the referral line. Domains without
// activities contribute nothing.
func Recommend(acts ActivitySource, status Status, missing []models.Milestone) []string {
	var out []string
	if status == StatusOnTrack {
		out = append(out, EncouragementLine)
		for _, d := range enrichmentDomains {
			out = append(out, take(firstBucket(acts, d), enrichmentPerDomain)...)
		}
		return truncate(out)
	}

	out = append(out, FocusLine)
	for _, d := range missingDomains(missing) {
		out = append(out, take(firstBucket(acts, d), focusPerDomain)...)
	}
	if status == StatusReferralNeeded {
		out = append(out, ReferralLine)
	}
	return truncate(out)
}

// missingDomains lists each domain once, in first-seen order.
func missingDomains(missing []models.Milestone) []models.Domain {
	var domains []models.Domain
	seen := make(map[models.Domain]bool)
	for _, m := range missing {
		if !seen[m.Domain] {
			seen[m.Domain] = true
			domains = append(domains, m.Domain)
		}
	}
	return domains
}

func firstBucket(acts ActivitySource, d models.Domain) []string {
	if acts == nil {
		return nil
	}
	list, _ := acts.FirstBucket(d)
	return list
}

func take(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func truncate(out []string) []string {
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}
