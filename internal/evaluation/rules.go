package evaluation

import "math"

// Threshold at or above which an incomplete set without red flags needs
// support rather than referral.
const supportThreshold = 50.0

// DecideStatus applies the status rules in priority order:
//  1. any missed red flag - referral, whatever the rate
//  2. everything expected achieved - on track
//  3. at least half achieved - needs support
//  4. otherwise - referral
//
// rate must be the unrounded completion percentage.
func DecideStatus(rate float64, hasRedFlags bool) Status {
	if hasRedFlags {
		return StatusReferralNeeded
	}
	if rate == 100 {
		return StatusOnTrack
	}
	if rate >= supportThreshold {
		return StatusNeedsSupport
	}
	return StatusReferralNeeded
}

// completionRate is 100 * completed / expected, 0 when nothing is expected.
func completionRate(completed, expected int) float64 {
	if expected == 0 {
		return 0
	}
	return 100 * float64(completed) / float64(expected)
}

func roundRate(rate float64) float64 {
	return math.Round(rate*10) / 10
}
