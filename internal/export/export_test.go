package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEstimate() *model.TripEstimate {
	return &model.TripEstimate{
		LoadingPoint:      "Johannesburg",
		OffloadingPoint:   "Durban",
		DistanceKm:        1400,
		LoadTons:          25,
		FuelPricePerLitre: 23.50,
		TollFees:          850,
		TurnaroundHours:   36,
		RatePerTon:        450,
		PaymentTerms:      "WEEKLY",

		FuelCost:             11515,
		DriverCost:           3060,
		VehicleOperatingCost: 6300,
		AdminOverhead:        1738,
		TotalCost:            23463,
		TotalRevenue:         11250,
		Profit:               -12213,
		ProfitMarginPct:      -108.56,
		CostPerTon:           938.52,
		RecommendedRatePerTon: 1126.22,
		RecommendedRatePerKm:  8.04,
		RiskTier:              "MEDIUM",
		DaysToPayment:         7,
		OpportunityCost:       45.01,
		AdjustedProfit:        -12258.01,
	}
}

func TestEstimateRowsCoverEveryFigure(t *testing.T) {
	rows := EstimateRows(sampleEstimate())
	require.Len(t, rows, 24)

	byLabel := make(map[string]string, len(rows))
	for _, row := range rows {
		byLabel[row.Label] = row.Value
	}
	assert.Equal(t, "23463.00", byLabel["Total Cost (R)"])
	assert.Equal(t, "-12213.00", byLabel["Profit (R)"])
	assert.Equal(t, "MEDIUM", byLabel["Cashflow Risk"])
	assert.Equal(t, "7", byLabel["Days to Payment"])
}

func TestWriteEstimateCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEstimateCSV(&buf, sampleEstimate()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// Header plus one record per row
	require.Len(t, records, 25)
	assert.Equal(t, []string{"Field", "Value"}, records[0])
	assert.Equal(t, []string{"Loading Point", "Johannesburg"}, records[1])
}

func TestWriteSlipReportCSVTotals(t *testing.T) {
	slips := []model.FuelSlip{
		{
			SlipDate:      time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			TruckReg:      "ABC 123 GP",
			Litres:        decimal.RequireFromString("450.5"),
			PricePerLitre: decimal.RequireFromString("23.50"),
			Total:         decimal.RequireFromString("10586.75"),
			Source:        model.SlipSourceManual,
		},
		{
			SlipDate:      time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC),
			TruckReg:      "ABC 123 GP",
			Litres:        decimal.RequireFromString("380"),
			PricePerLitre: decimal.RequireFromString("23.50"),
			Total:         decimal.RequireFromString("8930"),
			Source:        model.SlipSourceOCR,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSlipReportCSV(&buf, slips))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	last := records[3]
	assert.Equal(t, "TOTAL", last[0])
	assert.Equal(t, "830.50", last[2])
	assert.Equal(t, "19516.75", last[4])
}

func TestWriteEstimateXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEstimateXLSX(&buf, sampleEstimate()))
	// XLSX files are zip archives; check the magic bytes
	require.Greater(t, buf.Len(), 4)
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}

func TestPDFExporterRendersRoute(t *testing.T) {
	exporter, err := NewPDFExporter("http://gotenberg.invalid", nil)
	require.NoError(t, err)

	html, err := exporter.buildEstimateHTML(sampleEstimate())
	require.NoError(t, err)
	assert.Contains(t, html, "Johannesburg to Durban")
	assert.Contains(t, html, "23463.00")
	assert.Contains(t, html, "Risk-Adjusted Profit")
}

func TestPDFExporterPostsToGotenberg(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		file, _, err := r.FormFile("files")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(content), "Route Estimate"))
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	exporter, err := NewPDFExporter(server.URL, server.Client())
	require.NoError(t, err)

	pdf, err := exporter.RenderEstimate(context.Background(), sampleEstimate())
	require.NoError(t, err)
	assert.Equal(t, "/forms/chromium/convert/html", gotPath)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestPDFExporterRejectsMissingEndpoint(t *testing.T) {
	exporter, err := NewPDFExporter("", nil)
	require.NoError(t, err)
	_, err = exporter.RenderEstimate(context.Background(), sampleEstimate())
	assert.Error(t, err)
}
