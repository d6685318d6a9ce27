package evaluation

import "fmt"

// message renders the caregiver-facing summary. Every referral carries the
// consult-a-health-worker call to action.
func message(name string, ageMonths int, status Status, rate float64, completed, expected, redFlags int) string {
	switch status {
	case StatusNoData:
		return fmt.Sprintf("No milestone data available for %d months.", ageMonths)
	case StatusOnTrack:
		return fmt.Sprintf("✅ %s (%d months) is developing well! All %d expected milestones have been achieved. "+
			"Continue with regular play and interaction to support continued growth.", name, ageMonths, expected)
	case StatusNeedsSupport:
		return fmt.Sprintf("💛 %s (%d months) is making progress. %d out of %d milestones achieved (%.0f%%). "+
			"Focus on the suggested activities to support development in areas that need attention.",
			name, ageMonths, completed, expected, rate)
	}

	var msg string
	if redFlags > 0 {
		msg = fmt.Sprintf("🚨 %s (%d months) has missed %d critical milestone(s). "+
			"Please consult a health worker or pediatrician as soon as possible for proper assessment. ",
			name, ageMonths, redFlags)
	} else {
		msg = fmt.Sprintf("⚠️ %s (%d months) has achieved only %d out of %d milestones (%.0f%%). "+
			"We recommend consulting with a health worker for guidance and support. ",
			name, ageMonths, completed, expected, rate)
	}
	return msg + "Early intervention can make a significant difference."
}
