package export

import (
	"strconv"

	"github.com/SkhumbuzoT/prime-tools/internal/model"
)

// Row is one labelled figure in an estimate report.
type Row struct {
	Label string
	Value string
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// EstimateRows flattens a stored trip estimate into the ordered rows shared by
// every export format. Monetary figures are rendered at two decimals.
func EstimateRows(e *model.TripEstimate) []Row {
	return []Row{
		{"Loading Point", e.LoadingPoint},
		{"Offloading Point", e.OffloadingPoint},
		{"Distance (km)", formatFloat(e.DistanceKm)},
		{"Load (tons)", formatFloat(e.LoadTons)},
		{"Fuel Price (R/l)", formatFloat(e.FuelPricePerLitre)},
		{"Toll Fees (R)", formatFloat(e.TollFees)},
		{"Turnaround (hours)", formatFloat(e.TurnaroundHours)},
		{"Rate (R/ton)", formatFloat(e.RatePerTon)},
		{"Payment Terms", e.PaymentTerms},
		{"Fuel Cost (R)", formatFloat(e.FuelCost)},
		{"Driver Cost (R)", formatFloat(e.DriverCost)},
		{"Vehicle Cost (R)", formatFloat(e.VehicleOperatingCost)},
		{"Admin Overhead (R)", formatFloat(e.AdminOverhead)},
		{"Total Cost (R)", formatFloat(e.TotalCost)},
		{"Revenue (R)", formatFloat(e.TotalRevenue)},
		{"Profit (R)", formatFloat(e.Profit)},
		{"Margin (%)", formatFloat(e.ProfitMarginPct)},
		{"Cost per Ton (R)", formatFloat(e.CostPerTon)},
		{"Recommended Rate (R/ton)", formatFloat(e.RecommendedRatePerTon)},
		{"Recommended Rate (R/km)", formatFloat(e.RecommendedRatePerKm)},
		{"Cashflow Risk", e.RiskTier},
		{"Days to Payment", strconv.Itoa(e.DaysToPayment)},
		{"Opportunity Cost (R)", formatFloat(e.OpportunityCost)},
		{"Risk-Adjusted Profit (R)", formatFloat(e.AdjustedProfit)},
	}
}
