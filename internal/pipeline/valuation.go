package pipeline

import (
	"fmt"
	"math"

	"milecompare/internal/domain"
	"milecompare/internal/reference"
)

// Tier thresholds as multiples of the program baseline. This is the one
// table used everywhere.
const (
	tierHigh     = 1.5
	tierStandard = 1.0
	tierLow      = 0.7
)

// Value fills in fees, value per unit, tier, recommendation and the ratio
// string. A zero or unknown requirement never reaches the division.
func Value(v *domain.OfferView, season domain.Season, route RouteInfo) {
	switch v.RequirementStatus {
	case domain.RequirementNoProgram, domain.RequirementUnsupported:
		notApplicable(v, domain.RecommendCashOnly)
		return
	case domain.RequirementNotApplicable:
		notApplicable(v, domain.RecommendCash)
		return
	}

	required := v.RequiredAmount.For(season)
	baseline := reference.Baseline(v.Program)
	if required <= 0 || baseline <= 0 {
		notApplicable(v, domain.RecommendCash)
		return
	}

	if !route.Domestic {
		v.Fees = reference.FuelSurcharge(v.Program, route.Region)
	}
	vpu := math.Round(float64(v.Price-v.Fees)/float64(required)*100) / 100
	v.ValuePerUnit = &vpu

	ratio := vpu / baseline
	v.RatioToBaseline = fmt.Sprintf("%.2fx baseline", ratio)
	v.EfficiencyTier = TierFor(ratio)
	switch v.EfficiencyTier {
	case domain.TierHigh, domain.TierStandard:
		v.Recommendation = domain.RecommendRedeem
	default:
		v.Recommendation = domain.RecommendCash
	}
}

// TierFor maps a value/baseline ratio to an efficiency tier.
func TierFor(ratio float64) domain.Tier {
	switch {
	case ratio >= tierHigh:
		return domain.TierHigh
	case ratio >= tierStandard:
		return domain.TierStandard
	case ratio >= tierLow:
		return domain.TierLow
	default:
		return domain.TierVeryLow
	}
}

func notApplicable(v *domain.OfferView, rec domain.Recommendation) {
	v.ValuePerUnit = nil
	v.EfficiencyTier = domain.TierNotApplicable
	v.Recommendation = rec
	v.RatioToBaseline = "n/a"
}
