package export

import (
	"fmt"
	"io"

	"github.com/SkhumbuzoT/prime-tools/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// WriteEstimateXLSX renders a trip estimate as a single-sheet workbook with
// the same rows as the CSV report.
func WriteEstimateXLSX(w io.Writer, e *model.TripEstimate) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Estimate"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", "Field"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", "Value"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	for i, row := range EstimateRows(e) {
		rowNum := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.Label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row.Value); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return err
	}

	return f.Write(w)
}

// WriteSlipReportXLSX renders a fuel slip ledger workbook with a totals row.
func WriteSlipReportXLSX(w io.Writer, slips []model.FuelSlip) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Fuel Slips"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	headers := []string{"Date", "Truck", "Litres", "Price/l", "Total", "Reference", "Source"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	totalLitres := decimal.Zero
	totalSpend := decimal.Zero
	for i, slip := range slips {
		rowNum := i + 2
		values := []interface{}{
			slip.SlipDate.Format("2006-01-02"),
			slip.TruckReg,
			slip.Litres.StringFixed(2),
			slip.PricePerLitre.StringFixed(2),
			slip.Total.StringFixed(2),
			slip.Reference,
			slip.Source,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		totalLitres = totalLitres.Add(slip.Litres)
		totalSpend = totalSpend.Add(slip.Total)
	}

	totalRow := len(slips) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), totalLitres.StringFixed(2)); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), totalSpend.StringFixed(2)); err != nil {
		return err
	}

	return f.Write(w)
}
