package engine

// LOIInputs are the quick load-over-income calculator parameters. The
// fuel model here is efficiency in km per litre, matching how owner
// drivers quote it; the full cost model uses consumption per km instead.
type LOIInputs struct {
	LoadTons                 float64 `json:"load_tons"`
	DistanceKm               float64 `json:"distance_km"`
	RatePerTon               float64 `json:"rate_per_ton"`
	DieselPricePerLitre      float64 `json:"diesel_price_per_litre"`
	FuelEfficiencyKmPerLitre float64 `json:"fuel_efficiency_km_per_litre"`
}

// LOIResult is the diesel-only profitability snapshot.
type LOIResult struct {
	Revenue      float64 `json:"revenue"`
	DieselLitres float64 `json:"diesel_litres"`
	DieselCost   float64 `json:"diesel_cost"`
	Profit       float64 `json:"profit"`
	LOIMarginPct float64 `json:"loi_margin_pct"`
}

// ComputeLOI estimates trip profitability against diesel cost alone.
// Zero efficiency or zero revenue are degenerate inputs, not errors.
func ComputeLOI(in LOIInputs) (LOIResult, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"load_tons", in.LoadTons},
		{"distance_km", in.DistanceKm},
		{"rate_per_ton", in.RatePerTon},
		{"diesel_price_per_litre", in.DieselPricePerLitre},
		{"fuel_efficiency_km_per_litre", in.FuelEfficiencyKmPerLitre},
	}
	for _, f := range fields {
		if err := checkNonNegative(f.name, f.value); err != nil {
			return LOIResult{}, err
		}
	}

	revenue := in.LoadTons * in.RatePerTon

	litres := 0.0
	if in.FuelEfficiencyKmPerLitre > 0 {
		litres = in.DistanceKm / in.FuelEfficiencyKmPerLitre
	}
	dieselCost := litres * in.DieselPricePerLitre
	profit := revenue - dieselCost

	margin := 0.0
	if revenue > 0 {
		margin = profit / revenue * 100
	}

	return LOIResult{
		Revenue:      revenue,
		DieselLitres: litres,
		DieselCost:   dieselCost,
		Profit:       profit,
		LOIMarginPct: margin,
	}, nil
}
