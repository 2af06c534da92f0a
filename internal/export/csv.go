package export

import (
	"encoding/csv"
	"io"

	"github.com/SkhumbuzoT/prime-tools/internal/model"

	"github.com/shopspring/decimal"
)

// WriteEstimateCSV serialises a trip estimate to a two-column CSV report.
func WriteEstimateCSV(w io.Writer, e *model.TripEstimate) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Field", "Value"}); err != nil {
		return err
	}
	for _, row := range EstimateRows(e) {
		if err := writer.Write([]string{row.Label, row.Value}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSlipReportCSV emits a fuel slip ledger as CSV, one slip per line
// with a trailing totals row.
func WriteSlipReportCSV(w io.Writer, slips []model.FuelSlip) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Date", "Truck", "Litres", "Price/l", "Total", "Reference", "Source"}); err != nil {
		return err
	}
	totalLitres := decimal.Zero
	totalSpend := decimal.Zero
	for _, slip := range slips {
		if err := writer.Write([]string{
			slip.SlipDate.Format("2006-01-02"),
			slip.TruckReg,
			slip.Litres.StringFixed(2),
			slip.PricePerLitre.StringFixed(2),
			slip.Total.StringFixed(2),
			slip.Reference,
			slip.Source,
		}); err != nil {
			return err
		}
		totalLitres = totalLitres.Add(slip.Litres)
		totalSpend = totalSpend.Add(slip.Total)
	}
	if err := writer.Write([]string{"TOTAL", "", totalLitres.StringFixed(2), "", totalSpend.StringFixed(2), "", ""}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
