package classify

import (
	"fmt"
	"math"
)

// Tier groups a match score for display.
type Tier string

// Score tiers.
const (
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
	TierUnscored Tier = "unscored"
)

// Score tier boundaries, inclusive lower bounds.
const (
	HighScoreThreshold   = 75.0
	MediumScoreThreshold = 50.0
)

// ScoreTier classifies a score. A nil score is unscored, which is never the
// same as a low score of 0.
func ScoreTier(score *float64) Tier {
	if score == nil || math.IsNaN(*score) {
		return TierUnscored
	}
	switch s := *score; {
	case s >= HighScoreThreshold:
		return TierHigh
	case s >= MediumScoreThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Color returns the palette entry for the tier.
func (t Tier) Color() Color {
	switch t {
	case TierHigh:
		return ColorGreen
	case TierMedium:
		return ColorYellow
	case TierLow:
		return ColorRed
	default:
		return ColorNeutral
	}
}

// Percent formats a score as a whole percentage, "—" when unscored.
func Percent(score *float64) string {
	if ScoreTier(score) == TierUnscored {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", *score)
}
