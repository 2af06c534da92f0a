package engine

import (
	"fmt"
	"math"
)

// PaymentTerms enum constants
type PaymentTerms string

const (
	PaymentCash    PaymentTerms = "CASH"
	PaymentDaily   PaymentTerms = "DAILY"
	PaymentWeekly  PaymentTerms = "WEEKLY"
	PaymentMonthly PaymentTerms = "MONTHLY"
)

// RiskTier enum constants
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

// TripInputs holds the raw parameters of a single trip calculation.
// A fresh value is built per request; the engine never mutates it.
type TripInputs struct {
	DistanceKm        float64      `json:"distance_km"`
	LoadTons          float64      `json:"load_tons"`
	FuelPricePerLitre float64      `json:"fuel_price_per_litre"`
	TollFees          float64      `json:"toll_fees"`
	TurnaroundHours   float64      `json:"turnaround_time_hours"`
	RatePerTon        float64      `json:"rate_per_ton"`
	PaymentTerms      PaymentTerms `json:"payment_terms"`
}

// CostRateConfig consolidates the per-variant cost assumptions into one
// configurable model. Fuel is modelled as consumption in litres per km,
// driver cost per hour, vehicle operating cost per km. Percentages are
// fractions (0.08 = 8%).
type CostRateConfig struct {
	FuelConsumptionPerKm      float64 `json:"fuel_consumption_per_km"`
	DriverCostPerHour         float64 `json:"driver_cost_per_hour"`
	VehicleOperatingCostPerKm float64 `json:"vehicle_operating_cost_per_km"`
	AdminOverheadPct          float64 `json:"admin_overhead_pct"`
	TargetMarkupPct           float64 `json:"target_markup_pct"`
}

// RiskConfig controls the opportunity-cost adjustment. The rate is an
// annual fraction (0.10 = 10% per year).
type RiskConfig struct {
	AnnualOpportunityRate float64 `json:"annual_opportunity_rate"`
}

// DefaultCostRates returns the rate assumptions of the reference estimator.
func DefaultCostRates() CostRateConfig {
	return CostRateConfig{
		FuelConsumptionPerKm:      0.35,
		DriverCostPerHour:         85,
		VehicleOperatingCostPerKm: 4.50,
		AdminOverheadPct:          0.08,
		TargetMarkupPct:           0.20,
	}
}

// DefaultRiskConfig returns the default 10% annual opportunity rate.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{AnnualOpportunityRate: 0.10}
}

// CostBreakdown is the structured cost result of one trip. TotalCost is
// always the exact sum of the component fields.
type CostBreakdown struct {
	FuelCost             float64 `json:"fuel_cost"`
	DriverCost           float64 `json:"driver_cost"`
	VehicleOperatingCost float64 `json:"vehicle_operating_cost"`
	TollFees             float64 `json:"toll_fees"`
	AdminOverhead        float64 `json:"admin_overhead"`
	TotalCost            float64 `json:"total_cost"`
}

// ProfitabilityResult carries revenue, profit and rate recommendations.
// Ratios with a zero denominator are defined as 0, never an error.
type ProfitabilityResult struct {
	TotalRevenue          float64 `json:"total_revenue"`
	Profit                float64 `json:"profit"`
	ProfitMarginPct       float64 `json:"profit_margin_pct"`
	CostPerTon            float64 `json:"cost_per_ton"`
	RecommendedRatePerTon float64 `json:"recommended_rate_per_ton"`
	RecommendedRatePerKm  float64 `json:"recommended_rate_per_km"`
}

// CashflowRiskAssessment maps payment terms to a risk tier and the
// opportunity cost of the working capital tied up until payment.
type CashflowRiskAssessment struct {
	RiskTier        RiskTier `json:"risk_tier"`
	DaysToPayment   int      `json:"days_to_payment"`
	CashTiedUp      float64  `json:"cash_tied_up"`
	OpportunityCost float64  `json:"opportunity_cost"`
	AdjustedProfit  float64  `json:"adjusted_profit"`
}

// Result bundles the full tuple produced by one calculation.
type Result struct {
	Inputs        TripInputs             `json:"inputs"`
	Costs         CostBreakdown          `json:"costs"`
	Profitability ProfitabilityResult    `json:"profitability"`
	Risk          CashflowRiskAssessment `json:"risk"`
}

// ValidationError reports a rejected input field. The engine performs no
// partial computation on invalid input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func checkNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

// Validate rejects negative or non-finite numeric fields. Zero values are
// legal degenerate inputs and are handled by the ratio guards downstream.
func (in TripInputs) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"distance_km", in.DistanceKm},
		{"load_tons", in.LoadTons},
		{"fuel_price_per_litre", in.FuelPricePerLitre},
		{"toll_fees", in.TollFees},
		{"turnaround_time_hours", in.TurnaroundHours},
		{"rate_per_ton", in.RatePerTon},
	}
	for _, f := range fields {
		if err := checkNonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// termsEntry is the fixed payment-terms lookup row.
type termsEntry struct {
	tier RiskTier
	days int
}

var termsTable = map[PaymentTerms]termsEntry{
	PaymentCash:    {RiskLow, 0},
	PaymentDaily:   {RiskLow, 1},
	PaymentWeekly:  {RiskMedium, 7},
	PaymentMonthly: {RiskHigh, 30},
}

// Lookup resolves a payment-terms value to its risk tier and days to
// payment. Unknown values fall back to the Weekly entry; callers that
// need strict input checking reject unknown terms before reaching the
// engine.
func (t PaymentTerms) Lookup() (RiskTier, int) {
	entry, ok := termsTable[t]
	if !ok {
		entry = termsTable[PaymentWeekly]
	}
	return entry.tier, entry.days
}

// ComputeCosts converts trip parameters into the cost breakdown.
// Admin overhead is applied to the subtotal of all other components
// including tolls; tolls are then added once to the total.
func ComputeCosts(in TripInputs, rates CostRateConfig) (CostBreakdown, error) {
	if err := in.Validate(); err != nil {
		return CostBreakdown{}, err
	}

	fuelCost := in.DistanceKm * rates.FuelConsumptionPerKm * in.FuelPricePerLitre
	driverCost := in.TurnaroundHours * rates.DriverCostPerHour
	vehicleCost := in.DistanceKm * rates.VehicleOperatingCostPerKm
	adminOverhead := (fuelCost + driverCost + vehicleCost + in.TollFees) * rates.AdminOverheadPct

	return CostBreakdown{
		FuelCost:             fuelCost,
		DriverCost:           driverCost,
		VehicleOperatingCost: vehicleCost,
		TollFees:             in.TollFees,
		AdminOverhead:        adminOverhead,
		TotalCost:            fuelCost + driverCost + vehicleCost + in.TollFees + adminOverhead,
	}, nil
}

// ComputeProfitability derives revenue, profit, margin and recommended
// rates from a cost breakdown. targetMarkupPct is a fraction (0.20 = 20%).
func ComputeProfitability(in TripInputs, costs CostBreakdown, targetMarkupPct float64) ProfitabilityResult {
	revenue := in.LoadTons * in.RatePerTon
	profit := revenue - costs.TotalCost

	marginPct := 0.0
	if revenue > 0 {
		marginPct = profit / revenue * 100
	}

	costPerTon := 0.0
	recommendedPerTon := 0.0
	if in.LoadTons > 0 {
		costPerTon = costs.TotalCost / in.LoadTons
		recommendedPerTon = costPerTon * (1 + targetMarkupPct)
	}

	recommendedPerKm := 0.0
	if in.DistanceKm > 0 {
		recommendedPerKm = revenue / in.DistanceKm
	}

	return ProfitabilityResult{
		TotalRevenue:          revenue,
		Profit:                profit,
		ProfitMarginPct:       marginPct,
		CostPerTon:            costPerTon,
		RecommendedRatePerTon: recommendedPerTon,
		RecommendedRatePerKm:  recommendedPerKm,
	}
}

// AssessCashflowRisk classifies payment terms and charges the total cost
// with an opportunity cost for the days the cash stays tied up.
func AssessCashflowRisk(terms PaymentTerms, costs CostBreakdown, profit float64, cfg RiskConfig) CashflowRiskAssessment {
	tier, days := terms.Lookup()
	opportunityCost := costs.TotalCost * (cfg.AnnualOpportunityRate / 365) * float64(days)

	return CashflowRiskAssessment{
		RiskTier:        tier,
		DaysToPayment:   days,
		CashTiedUp:      costs.TotalCost,
		OpportunityCost: opportunityCost,
		AdjustedProfit:  profit - opportunityCost,
	}
}

// Evaluate runs the full pipeline: costs, profitability, risk. Pure and
// deterministic; identical inputs produce bit-identical results.
func Evaluate(in TripInputs, rates CostRateConfig, risk RiskConfig) (Result, error) {
	costs, err := ComputeCosts(in, rates)
	if err != nil {
		return Result{}, err
	}
	profitability := ComputeProfitability(in, costs, rates.TargetMarkupPct)
	assessment := AssessCashflowRisk(in.PaymentTerms, costs, profitability.Profit, risk)

	return Result{
		Inputs:        in,
		Costs:         costs,
		Profitability: profitability,
		Risk:          assessment,
	}, nil
}
