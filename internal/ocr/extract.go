package ocr

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExtractedSlipFields is the best-effort read of a fuel slip from OCR
// text. Every field is optional; empty string means the pattern did not
// match. Values are free-form strings meant for human verification —
// they must pass CoerceSlipValues before anything downstream trusts them.
type ExtractedSlipFields struct {
	Date          string `json:"date"`
	TruckReg      string `json:"truck_reg"`
	Litres        string `json:"litres"`
	PricePerLitre string `json:"price_per_litre"`
	Total         string `json:"total"`
	Reference     string `json:"reference"`
}

var (
	dateRe = regexp.MustCompile(`\b(\d{4}[-/]\d{2}[-/]\d{2}|\d{2}[-/]\d{2}[-/]\d{4})\b`)
	// SA plate formats: "ABC 123 GP", "CA 123-456", or compacted "ABC123GP"
	regRe    = regexp.MustCompile(`\b([A-Z]{2,3}[ -]?\d{2,6}[ -]?[A-Z]{0,3})\b`)
	litresRe = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*(?:L\b|LT\b|LTR\b|LITRES?\b)`)
	priceRe  = regexp.MustCompile(`(?i)(?:R|ZAR)?\s*(\d+(?:[.,]\d+)?)\s*(?:/|PER\s+)(?:L\b|LITRE\b)`)
	totalRe  = regexp.MustCompile(`(?i)\bTOTAL\s*:?\s*(?:R|ZAR)?\s*(\d[\d ]*(?:[.,]\d{1,2})?)`)
	refRe    = regexp.MustCompile(`(?i)\b(?:REF|RECEIPT|SLIP|INV)\s*(?:NO)?\s*[:#]?\s*([A-Z0-9][A-Z0-9-]{2,})`)
)

// ExtractSlipFields runs the pattern passes over recognized slip text.
// There is no error recovery: a field the patterns miss stays empty and
// is supplied by the operator instead.
func ExtractSlipFields(text string) ExtractedSlipFields {
	fields := ExtractedSlipFields{}

	if m := dateRe.FindStringSubmatch(text); m != nil {
		fields.Date = m[1]
	}
	if m := litresRe.FindStringSubmatch(text); m != nil {
		fields.Litres = normaliseNumber(m[1])
	}
	if m := priceRe.FindStringSubmatch(text); m != nil {
		fields.PricePerLitre = normaliseNumber(m[1])
	}
	if m := totalRe.FindStringSubmatch(text); m != nil {
		fields.Total = normaliseNumber(m[1])
	}
	if m := refRe.FindStringSubmatch(text); m != nil {
		fields.Reference = strings.ToUpper(m[1])
	}

	// Plate matching runs over an uppercased copy and skips candidates
	// whose leading token is an amount or reference keyword.
	upper := strings.ToUpper(text)
	for _, m := range regRe.FindAllStringSubmatch(upper, -1) {
		candidate := strings.TrimSpace(m[1])
		if isDateLike(candidate) || hasStopwordPrefix(candidate) {
			continue
		}
		fields.TruckReg = candidate
		break
	}

	return fields
}

func normaliseNumber(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\t", "")
	s = strings.ReplaceAll(s, ",", ".")
	return s
}

func isDateLike(s string) bool {
	return dateRe.MatchString(s)
}

var plateStopwords = map[string]bool{
	"ZAR": true, "REF": true, "INV": true, "VAT": true,
	"TEL": true, "KM": true, "LT": true, "LTR": true,
}

func hasStopwordPrefix(candidate string) bool {
	token := candidate
	if i := strings.IndexAny(candidate, " -"); i > 0 {
		token = candidate[:i]
	}
	return plateStopwords[token]
}

// SlipValues is the validated, typed form of extracted (or manually
// entered) slip fields. Total is always litres * price, recomputed here
// rather than trusted from the slip text.
type SlipValues struct {
	Date          time.Time
	TruckReg      string
	Litres        decimal.Decimal
	PricePerLitre decimal.Decimal
	Total         decimal.Decimal
	Reference     string
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "02-01-2006", "02/01/2006"}

// CoerceSlipValues validates and converts extracted fields into typed
// values. Missing optional fields default; malformed numerics fail so a
// human corrects them instead of polluting the ledger.
func CoerceSlipValues(fields ExtractedSlipFields) (SlipValues, error) {
	values := SlipValues{
		TruckReg:  strings.TrimSpace(fields.TruckReg),
		Reference: strings.TrimSpace(fields.Reference),
	}

	if fields.Date != "" {
		parsed, err := parseSlipDate(fields.Date)
		if err != nil {
			return SlipValues{}, err
		}
		values.Date = parsed
	}

	if fields.Litres != "" {
		litres, err := decimal.NewFromString(fields.Litres)
		if err != nil {
			return SlipValues{}, &FieldError{Field: "litres", Value: fields.Litres}
		}
		if litres.IsNegative() {
			return SlipValues{}, &FieldError{Field: "litres", Value: fields.Litres}
		}
		values.Litres = litres
	}

	if fields.PricePerLitre != "" {
		price, err := decimal.NewFromString(fields.PricePerLitre)
		if err != nil {
			return SlipValues{}, &FieldError{Field: "price_per_litre", Value: fields.PricePerLitre}
		}
		if price.IsNegative() {
			return SlipValues{}, &FieldError{Field: "price_per_litre", Value: fields.PricePerLitre}
		}
		values.PricePerLitre = price
	}

	values.Total = values.Litres.Mul(values.PricePerLitre)
	return values, nil
}

func parseSlipDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &FieldError{Field: "date", Value: s}
}

// FieldError reports a slip field that failed coercion.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return "slip field " + e.Field + " is missing or empty"
	}
	return "cannot coerce slip field " + e.Field + " from '" + e.Value + "'"
}
