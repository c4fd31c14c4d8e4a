package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milecompare/internal/domain"
	"milecompare/internal/pipeline"
)

func TestValue_Domestic(t *testing.T) {
	v := domain.OfferView{
		Program:           domain.ProgramANA,
		Price:             21000,
		RequiredAmount:    domain.SeasonAmounts{Off: 6000, Regular: 7000, Peak: 9000},
		RequirementStatus: domain.RequirementApplicable,
	}
	pipeline.Value(&v, domain.SeasonRegular, pipeline.NewRouteInfo("HND", "ITM", 514))

	require.NotNil(t, v.ValuePerUnit)
	assert.Equal(t, 3.0, *v.ValuePerUnit)
	assert.Equal(t, 0, v.Fees)
	assert.Equal(t, domain.TierHigh, v.EfficiencyTier)
	assert.Equal(t, domain.RecommendRedeem, v.Recommendation)
	assert.Equal(t, "1.50x baseline", v.RatioToBaseline)
}

func TestValue_InternationalSubtractsSurcharge(t *testing.T) {
	v := domain.OfferView{
		Program:           domain.ProgramANA,
		Price:             150000,
		RequiredAmount:    domain.SeasonAmounts{Off: 40000, Regular: 50000, Peak: 55000},
		RequirementStatus: domain.RequirementApplicable,
	}
	pipeline.Value(&v, domain.SeasonRegular, pipeline.NewRouteInfo("NRT", "LAX", 8753))

	assert.Equal(t, 24000, v.Fees)
	require.NotNil(t, v.ValuePerUnit)
	assert.Equal(t, 2.52, *v.ValuePerUnit)
	assert.Equal(t, domain.TierStandard, v.EfficiencyTier)
	assert.Equal(t, domain.RecommendRedeem, v.Recommendation)
}

func TestValue_LowValuePrefersCash(t *testing.T) {
	v := domain.OfferView{
		Program:           domain.ProgramJAL,
		Price:             15000,
		RequiredAmount:    domain.SeasonAmounts{Off: 5000, Regular: 7500, Peak: 9000},
		RequirementStatus: domain.RequirementApplicable,
	}
	pipeline.Value(&v, domain.SeasonPeak, pipeline.NewRouteInfo("HND", "ITM", 514))
	assert.Equal(t, 1.67, *v.ValuePerUnit)
	assert.Equal(t, domain.TierLow, v.EfficiencyTier)
	assert.Equal(t, domain.RecommendCash, v.Recommendation)
}

func TestValue_GuardsZeroRequirement(t *testing.T) {
	route := pipeline.NewRouteInfo("HND", "ITM", 514)
	tests := []struct {
		name   string
		view   domain.OfferView
		season domain.Season
		rec    domain.Recommendation
	}{
		{"zero amount", domain.OfferView{Program: domain.ProgramANA, Price: 20000, RequirementStatus: domain.RequirementApplicable}, domain.SeasonRegular, domain.RecommendCash},
		{"zero for season", domain.OfferView{Program: domain.ProgramANA, Price: 20000, RequiredAmount: domain.SeasonAmounts{Regular: 7000}, RequirementStatus: domain.RequirementApplicable}, domain.SeasonPeak, domain.RecommendCash},
		{"not applicable", domain.OfferView{Program: domain.ProgramDelta, Price: 20000, RequirementStatus: domain.RequirementNotApplicable}, domain.SeasonRegular, domain.RecommendCash},
		{"no program", domain.OfferView{Program: domain.ProgramNone, Price: 9000, RequirementStatus: domain.RequirementNoProgram}, domain.SeasonRegular, domain.RecommendCashOnly},
		{"unsupported", domain.OfferView{Program: domain.ProgramUnsupported, Price: 9000, RequirementStatus: domain.RequirementUnsupported}, domain.SeasonRegular, domain.RecommendCashOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.view
			assert.NotPanics(t, func() { pipeline.Value(&v, tt.season, route) })
			assert.Nil(t, v.ValuePerUnit)
			assert.Equal(t, domain.TierNotApplicable, v.EfficiencyTier)
			assert.Equal(t, tt.rec, v.Recommendation)
			assert.Equal(t, "n/a", v.RatioToBaseline)
		})
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		ratio float64
		want  domain.Tier
	}{
		{2.0, domain.TierHigh},
		{1.5, domain.TierHigh},
		{1.49, domain.TierStandard},
		{1.0, domain.TierStandard},
		{0.99, domain.TierLow},
		{0.7, domain.TierLow},
		{0.69, domain.TierVeryLow},
		{0, domain.TierVeryLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pipeline.TierFor(tt.ratio), "ratio %.2f", tt.ratio)
	}
}
