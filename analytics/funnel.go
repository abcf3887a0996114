package analytics

import (
	"journeytrack/api/models"
)

// FunnelCounts carries the three per-collection row counts for one date range.
// A count that could not be fetched is reported as 0 by the caller, so the
// funnel always computes.
type FunnelCounts struct {
	WebsiteVisits int
	StoreVisits   int
	Signups       int
}

// ConversionRate returns current/previous as a percentage rounded to one
// decimal. A previous count of zero yields 0, never NaN or Inf. Rates above
// 100 are possible when visit accumulation inflates a later stage and are
// deliberately not clamped.
func ConversionRate(current, previous int) float64 {
	if previous <= 0 {
		return 0
	}
	rate := float64(current) / float64(previous) * 100
	return roundOneDecimal(rate)
}

func roundOneDecimal(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

// ComputeFunnel derives the three-stage conversion funnel from raw counts.
// The signup stage carries two different denominators on purpose: its
// percentage is end-to-end (relative to website visits) while its
// conversionFromPrevious is stage-local (relative to store visits).
func ComputeFunnel(counts FunnelCounts) models.FunnelResult {
	websiteToStore := ConversionRate(counts.StoreVisits, counts.WebsiteVisits)
	storeToSignup := ConversionRate(counts.Signups, counts.StoreVisits)
	websiteToSignup := ConversionRate(counts.Signups, counts.WebsiteVisits)

	return models.FunnelResult{
		Stages: []models.FunnelStage{
			{
				Name:       "Website Visits",
				Count:      counts.WebsiteVisits,
				Percentage: 100,
			},
			{
				Name:                   "Store Visits",
				Count:                  counts.StoreVisits,
				Percentage:             websiteToStore,
				ConversionFromPrevious: &websiteToStore,
			},
			{
				Name:                   "Signups",
				Count:                  counts.Signups,
				Percentage:             websiteToSignup,
				ConversionFromPrevious: &storeToSignup,
			},
		},
		Overall: models.FunnelOverall{
			TotalWebsiteVisits:    counts.WebsiteVisits,
			TotalStoreVisits:      counts.StoreVisits,
			TotalSignups:          counts.Signups,
			OverallConversionRate: websiteToSignup,
		},
	}
}
