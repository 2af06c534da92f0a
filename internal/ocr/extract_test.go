package ocr

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSlipText = `ENGEN TRUCK STOP N3 HARRISMITH
DATE: 2025-08-14
REG: ND 123456
DIESEL 50PPM  450.5 LITRES
PRICE R 23.50/LITRE
TOTAL: R 10 586.75
SLIP NO: A78-554`

func TestExtractSlipFields(t *testing.T) {
	fields := ExtractSlipFields(sampleSlipText)

	assert.Equal(t, "2025-08-14", fields.Date)
	assert.Equal(t, "ND 123456", fields.TruckReg)
	assert.Equal(t, "450.5", fields.Litres)
	assert.Equal(t, "23.50", fields.PricePerLitre)
	assert.Equal(t, "10586.75", fields.Total)
	assert.Equal(t, "A78-554", fields.Reference)
}

func TestExtractSlipFieldsPartialText(t *testing.T) {
	fields := ExtractSlipFields("handwritten note, 320 litres pumped")
	assert.Equal(t, "320", fields.Litres)
	assert.Empty(t, fields.Date)
	assert.Empty(t, fields.TruckReg)
	assert.Empty(t, fields.PricePerLitre)
	assert.Empty(t, fields.Total)
}

func TestExtractSkipsAmountTokensForPlate(t *testing.T) {
	fields := ExtractSlipFields("ZAR 410 paid, truck ABC 1234 GP")
	assert.Equal(t, "ABC 1234 GP", fields.TruckReg)
}

func TestExtractCommaDecimals(t *testing.T) {
	fields := ExtractSlipFields("412,7 L at 24,10/l")
	assert.Equal(t, "412.7", fields.Litres)
	assert.Equal(t, "24.10", fields.PricePerLitre)
}

func TestCoerceSlipValues(t *testing.T) {
	values, err := CoerceSlipValues(ExtractedSlipFields{
		Date:          "14/08/2025",
		TruckReg:      "ND 123456",
		Litres:        "450.5",
		PricePerLitre: "23.50",
		Total:         "999999", // slip total is never trusted
		Reference:     "A78-554",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC), values.Date)
	assert.Equal(t, "ND 123456", values.TruckReg)
	assert.True(t, values.Litres.Equal(decimal.RequireFromString("450.5")))
	assert.True(t, values.PricePerLitre.Equal(decimal.RequireFromString("23.50")))
	// Total recomputed from litres * price.
	assert.True(t, values.Total.Equal(decimal.RequireFromString("10586.75")), values.Total.String())
}

func TestCoerceSlipValuesRejectsMalformedNumbers(t *testing.T) {
	_, err := CoerceSlipValues(ExtractedSlipFields{Litres: "45O.5"}) // OCR letter O
	var ferr *FieldError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "litres", ferr.Field)

	_, err = CoerceSlipValues(ExtractedSlipFields{Date: "14th Aug"})
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "date", ferr.Field)

	_, err = CoerceSlipValues(ExtractedSlipFields{PricePerLitre: "-23.50"})
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "price_per_litre", ferr.Field)
}

func TestCoerceSlipValuesEmptyFieldsDefault(t *testing.T) {
	values, err := CoerceSlipValues(ExtractedSlipFields{})
	require.NoError(t, err)
	assert.True(t, values.Total.IsZero())
	assert.True(t, values.Date.IsZero())
}
