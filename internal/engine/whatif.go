package engine

// Override is a partial substitution over a baseline TripInputs. Nil
// fields keep the baseline value. Used by the what-if simulator, which
// may fire once per slider movement.
type Override struct {
	DistanceKm        *float64      `json:"distance_km"`
	LoadTons          *float64      `json:"load_tons"`
	FuelPricePerLitre *float64      `json:"fuel_price_per_litre"`
	TollFees          *float64      `json:"toll_fees"`
	TurnaroundHours   *float64      `json:"turnaround_time_hours"`
	RatePerTon        *float64      `json:"rate_per_ton"`
	PaymentTerms      *PaymentTerms `json:"payment_terms"`
}

// Apply returns a new TripInputs with the overridden fields substituted.
// The baseline is copied, never mutated.
func (o Override) Apply(base TripInputs) TripInputs {
	out := base
	if o.DistanceKm != nil {
		out.DistanceKm = *o.DistanceKm
	}
	if o.LoadTons != nil {
		out.LoadTons = *o.LoadTons
	}
	if o.FuelPricePerLitre != nil {
		out.FuelPricePerLitre = *o.FuelPricePerLitre
	}
	if o.TollFees != nil {
		out.TollFees = *o.TollFees
	}
	if o.TurnaroundHours != nil {
		out.TurnaroundHours = *o.TurnaroundHours
	}
	if o.RatePerTon != nil {
		out.RatePerTon = *o.RatePerTon
	}
	if o.PaymentTerms != nil {
		out.PaymentTerms = *o.PaymentTerms
	}
	return out
}

// Recompute re-runs the full pipeline with the overridden fields
// substituted into the baseline. Each call is independent; no state is
// carried between invocations.
func Recompute(base TripInputs, o Override, rates CostRateConfig, risk RiskConfig) (Result, error) {
	return Evaluate(o.Apply(base), rates, risk)
}
