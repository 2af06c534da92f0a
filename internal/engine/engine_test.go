package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInputs() TripInputs {
	return TripInputs{
		DistanceKm:        1400,
		LoadTons:          25,
		FuelPricePerLitre: 23.50,
		TollFees:          850,
		TurnaroundHours:   36,
		RatePerTon:        450,
		PaymentTerms:      PaymentWeekly,
	}
}

// Johannesburg to Cape Town reference trip, pinned against the formula
// chain rather than the (incorrect) narrative text shipped with it.
func TestEvaluateReferenceTrip(t *testing.T) {
	res, err := Evaluate(sampleInputs(), DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)

	costs := res.Costs
	assert.InDelta(t, 11515.0, costs.FuelCost, 1e-6)  // 1400 * 0.35 * 23.50
	assert.InDelta(t, 3060.0, costs.DriverCost, 1e-6) // 36 * 85
	assert.InDelta(t, 6300.0, costs.VehicleOperatingCost, 1e-6)
	assert.InDelta(t, 850.0, costs.TollFees, 1e-6)
	assert.InDelta(t, 1738.0, costs.AdminOverhead, 1e-6) // 21725 * 0.08
	assert.InDelta(t, 23463.0, costs.TotalCost, 1e-6)

	p := res.Profitability
	assert.InDelta(t, 11250.0, p.TotalRevenue, 1e-6)
	assert.InDelta(t, -12213.0, p.Profit, 1e-6) // a loss, not the narrative's R1,794
	assert.Less(t, p.ProfitMarginPct, 0.0)
	assert.InDelta(t, 23463.0/25*1.2, p.RecommendedRatePerTon, 1e-6)

	assert.Equal(t, RiskMedium, res.Risk.RiskTier)
	assert.Equal(t, 7, res.Risk.DaysToPayment)
	assert.InDelta(t, 23463.0*(0.10/365)*7, res.Risk.OpportunityCost, 1e-6)
	assert.InDelta(t, p.Profit-res.Risk.OpportunityCost, res.Risk.AdjustedProfit, 1e-9)
}

func TestTotalCostIsExactComponentSum(t *testing.T) {
	cases := []TripInputs{
		sampleInputs(),
		{DistanceKm: 1, LoadTons: 1, FuelPricePerLitre: 19.99, TollFees: 0.01, TurnaroundHours: 2.5, RatePerTon: 333},
		{},
		{TollFees: 1200},
	}
	for _, in := range cases {
		costs, err := ComputeCosts(in, DefaultCostRates())
		require.NoError(t, err)
		// Exact: tolls enter the total exactly once.
		sum := costs.FuelCost + costs.DriverCost + costs.VehicleOperatingCost + costs.TollFees + costs.AdminOverhead
		assert.Equal(t, sum, costs.TotalCost)
	}
}

func TestAdminOverheadIncludesTollsOnce(t *testing.T) {
	in := TripInputs{TollFees: 1000}
	costs, err := ComputeCosts(in, DefaultCostRates())
	require.NoError(t, err)
	assert.InDelta(t, 80.0, costs.AdminOverhead, 1e-9)
	assert.InDelta(t, 1080.0, costs.TotalCost, 1e-9)
}

func TestZeroDenominatorsYieldZeroRatios(t *testing.T) {
	in := sampleInputs()
	in.LoadTons = 0
	in.DistanceKm = 0

	res, err := Evaluate(in, DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)
	assert.Zero(t, res.Profitability.CostPerTon)
	assert.Zero(t, res.Profitability.RecommendedRatePerTon)
	assert.Zero(t, res.Profitability.RecommendedRatePerKm)
	assert.Zero(t, res.Profitability.TotalRevenue)
	assert.Zero(t, res.Profitability.ProfitMarginPct)
}

func TestZeroRateYieldsZeroMargin(t *testing.T) {
	in := sampleInputs()
	in.RatePerTon = 0
	res, err := Evaluate(in, DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)
	assert.Zero(t, res.Profitability.TotalRevenue)
	assert.Zero(t, res.Profitability.ProfitMarginPct)
	assert.Negative(t, res.Profitability.Profit)
}

func TestNegativeInputsRejected(t *testing.T) {
	cases := map[string]TripInputs{
		"distance_km":           {DistanceKm: -1},
		"load_tons":             {LoadTons: -0.5},
		"fuel_price_per_litre":  {FuelPricePerLitre: -23.5},
		"toll_fees":             {TollFees: -10},
		"turnaround_time_hours": {TurnaroundHours: -36},
		"rate_per_ton":          {RatePerTon: -450},
	}
	for field, in := range cases {
		_, err := ComputeCosts(in, DefaultCostRates())
		require.Error(t, err, field)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, field, verr.Field)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	in := sampleInputs()
	first, err := Evaluate(in, DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)
	second, err := Evaluate(in, DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFuelPriceMonotonicity(t *testing.T) {
	in := sampleInputs()
	base, err := Evaluate(in, DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)

	in.FuelPricePerLitre += 1.50
	bumped, err := Evaluate(in, DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)

	assert.Greater(t, bumped.Costs.TotalCost, base.Costs.TotalCost)
	assert.Less(t, bumped.Profitability.Profit, base.Profitability.Profit)
}

func TestOpportunityCostMonotonicInDaysToPayment(t *testing.T) {
	ordered := []PaymentTerms{PaymentCash, PaymentDaily, PaymentWeekly, PaymentMonthly}
	costs := CostBreakdown{TotalCost: 10000}

	prev := -1.0
	for _, terms := range ordered {
		assessment := AssessCashflowRisk(terms, costs, 0, DefaultRiskConfig())
		assert.Greater(t, assessment.OpportunityCost, prev, string(terms))
		prev = assessment.OpportunityCost
	}
}

func TestUnknownPaymentTermsFallBackToWeekly(t *testing.T) {
	tier, days := PaymentTerms("NET60").Lookup()
	assert.Equal(t, RiskMedium, tier)
	assert.Equal(t, 7, days)
}

func TestRecomputeAppliesOverridesWithoutMutatingBaseline(t *testing.T) {
	base := sampleInputs()
	rate := 950.0
	terms := PaymentCash

	res, err := Recompute(base, Override{RatePerTon: &rate, PaymentTerms: &terms}, DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)

	assert.InDelta(t, 25*950.0, res.Profitability.TotalRevenue, 1e-9)
	assert.Equal(t, RiskLow, res.Risk.RiskTier)
	assert.Equal(t, PaymentCash, res.Inputs.PaymentTerms)

	// Baseline untouched.
	assert.Equal(t, 450.0, base.RatePerTon)
	assert.Equal(t, PaymentWeekly, base.PaymentTerms)

	// Empty override reproduces the baseline result exactly.
	replay, err := Recompute(base, Override{}, DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)
	direct, err := Evaluate(base, DefaultCostRates(), DefaultRiskConfig())
	require.NoError(t, err)
	assert.Equal(t, direct, replay)
}

func TestComputeLOI(t *testing.T) {
	res, err := ComputeLOI(LOIInputs{
		LoadTons:                 30,
		DistanceKm:               600,
		RatePerTon:               400,
		DieselPricePerLitre:      23,
		FuelEfficiencyKmPerLitre: 2.5,
	})
	require.NoError(t, err)
	assert.InDelta(t, 12000.0, res.Revenue, 1e-9)
	assert.InDelta(t, 240.0, res.DieselLitres, 1e-9)
	assert.InDelta(t, 5520.0, res.DieselCost, 1e-9)
	assert.InDelta(t, 6480.0, res.Profit, 1e-9)
	assert.InDelta(t, 54.0, res.LOIMarginPct, 1e-9)
}

func TestComputeLOIDegenerateInputs(t *testing.T) {
	res, err := ComputeLOI(LOIInputs{DistanceKm: 500, DieselPricePerLitre: 23})
	require.NoError(t, err)
	assert.Zero(t, res.DieselLitres) // zero efficiency: no division error
	assert.Zero(t, res.Revenue)
	assert.Zero(t, res.LOIMarginPct)

	_, err = ComputeLOI(LOIInputs{LoadTons: -1})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
}
