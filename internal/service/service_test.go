package service

import (
	"context"
	"testing"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/engine"
	"github.com/SkhumbuzoT/prime-tools/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validRateCardRequest() CreateRateCardRequest {
	return CreateRateCardRequest{
		Name:                      "2026 interlink rates",
		FuelConsumptionPerKm:      "0.35",
		DriverCostPerHour:         "85",
		VehicleOperatingCostPerKm: "4.50",
		AdminOverheadPct:          "0.08",
		TargetMarkupPct:           "0.20",
		AnnualOpportunityRate:     "0.10",
		EffectiveFrom:             "2026-01-01",
		EffectiveTo:               "2026-12-31",
	}
}

func TestParseRateCardFields(t *testing.T) {
	card, err := parseRateCardFields(validRateCardRequest())
	require.NoError(t, err)

	assert.Equal(t, "2026 interlink rates", card.Name)
	assert.Equal(t, "0.3500", card.FuelConsumptionPerKm.StringFixed(4))
	assert.Equal(t, "85.00", card.DriverCostPerHour.StringFixed(2))
	assert.Equal(t, "2026-01-01", card.EffectiveFrom.Format("2006-01-02"))
	require.NotNil(t, card.EffectiveTo)
	assert.Equal(t, "2026-12-31", card.EffectiveTo.Format("2006-01-02"))
}

func TestParseRateCardFieldsOpenEnded(t *testing.T) {
	req := validRateCardRequest()
	req.EffectiveTo = ""

	card, err := parseRateCardFields(req)
	require.NoError(t, err)
	assert.Nil(t, card.EffectiveTo)
}

func TestParseRateCardFieldsRejectsMalformedRate(t *testing.T) {
	req := validRateCardRequest()
	req.AdminOverheadPct = "eight percent"

	_, err := parseRateCardFields(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin_overhead_pct")
}

func TestParseRateCardFieldsRejectsNegativeRate(t *testing.T) {
	req := validRateCardRequest()
	req.DriverCostPerHour = "-85"

	_, err := parseRateCardFields(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "driver_cost_per_hour")
}

func TestParseRateCardFieldsRejectsInvertedWindow(t *testing.T) {
	req := validRateCardRequest()
	req.EffectiveFrom = "2026-06-01"
	req.EffectiveTo = "2026-01-01"

	_, err := parseRateCardFields(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "effective_to")
}

func TestSnapshotResultCopiesFullTuple(t *testing.T) {
	result, err := engine.Evaluate(engine.TripInputs{
		DistanceKm:        1400,
		LoadTons:          25,
		FuelPricePerLitre: 23.50,
		TollFees:          850,
		TurnaroundHours:   36,
		RatePerTon:        450,
		PaymentTerms:      engine.PaymentWeekly,
	}, engine.DefaultCostRates(), engine.DefaultRiskConfig())
	require.NoError(t, err)

	snap := snapshotResult(result, engine.DefaultCostRates(), engine.DefaultRiskConfig())

	assert.Equal(t, result.Inputs.DistanceKm, snap.DistanceKm)
	assert.Equal(t, string(result.Inputs.PaymentTerms), snap.PaymentTerms)
	assert.Equal(t, result.Costs.TotalCost, snap.TotalCost)
	assert.Equal(t, result.Profitability.Profit, snap.Profit)
	assert.Equal(t, string(result.Risk.RiskTier), snap.RiskTier)
	assert.Equal(t, result.Risk.AdjustedProfit, snap.AdjustedProfit)

	// Round trip: the stored snapshot reconstructs identical engine inputs
	assert.Equal(t, result.Inputs, baselineInputs(snap))
}

func TestSnapshotConfigFreezesRateAssumptions(t *testing.T) {
	rates := engine.CostRateConfig{
		FuelConsumptionPerKm:      0.42,
		DriverCostPerHour:         95,
		VehicleOperatingCostPerKm: 5.10,
		AdminOverheadPct:          0.06,
		TargetMarkupPct:           0.25,
	}
	risk := engine.RiskConfig{AnnualOpportunityRate: 0.12}

	result, err := engine.Evaluate(engine.TripInputs{
		DistanceKm:        1400,
		LoadTons:          25,
		FuelPricePerLitre: 23.50,
		TollFees:          850,
		TurnaroundHours:   36,
		RatePerTon:        450,
		PaymentTerms:      engine.PaymentWeekly,
	}, rates, risk)
	require.NoError(t, err)

	snap := snapshotResult(result, rates, risk)

	gotRates, gotRisk := snapshotConfig(snap)
	assert.Equal(t, rates, gotRates)
	assert.Equal(t, risk, gotRisk)

	// A what-if baseline rebuilt from the snapshot alone reproduces the
	// stored figures, regardless of later rate card edits.
	baseline, err := engine.Evaluate(baselineInputs(snap), gotRates, gotRisk)
	require.NoError(t, err)
	assert.Equal(t, result, baseline)
}

func TestRouteName(t *testing.T) {
	assert.Equal(t, "Johannesburg to Durban", routeName("Johannesburg", "Durban"))
	assert.Equal(t, "Durban", routeName("", "Durban"))
	assert.Equal(t, "Johannesburg", routeName("Johannesburg", ""))
	assert.Equal(t, "Unnamed route", routeName("", ""))
}

func TestExtractSlipPrefillsCleanText(t *testing.T) {
	svc := &fuelSlipService{}

	res := svc.ExtractSlip(ExtractSlipRequest{Text: `ENGEN TRUCK STOP
DATE: 2025-08-14
REG: ABC 123 GP
DIESEL 50PPM  450.5 LITRES
PRICE R 23.50/LITRE
TOTAL: R 10586.75
SLIP NO: A78-554`})

	require.NotNil(t, res.Prefill)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "2025-08-14", res.Prefill.SlipDate)
	assert.Equal(t, "ABC 123 GP", res.Prefill.TruckReg)
	assert.Equal(t, "450.50", res.Prefill.Litres)
	assert.Equal(t, "23.50", res.Prefill.PricePerLitre)
	assert.Equal(t, model.SlipSourceOCR, res.Prefill.Source)
}

func TestExtractSlipWarnsOnUnusableText(t *testing.T) {
	svc := &fuelSlipService{}

	res := svc.ExtractSlip(ExtractSlipRequest{Text: "handwritten note, totally illegible"})

	assert.Nil(t, res.Prefill)
	assert.NotEmpty(t, res.Warnings)
}

func TestValidateRole(t *testing.T) {
	assert.True(t, validateRole(model.RoleAdmin))
	assert.True(t, validateRole(model.RolePlanner))
	assert.True(t, validateRole(model.RoleDriver))
	assert.False(t, validateRole("superuser"))
	assert.False(t, validateRole(""))
}

// --- Fakes ---

type fakeRateCardRepo struct {
	cards   map[uuid.UUID]*model.RateCard
	deleted []uuid.UUID
}

func (f *fakeRateCardRepo) Create(_ context.Context, card *model.RateCard) error { return nil }
func (f *fakeRateCardRepo) Update(_ context.Context, card *model.RateCard) error { return nil }

func (f *fakeRateCardRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRateCardRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RateCard, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return card, nil
}

func (f *fakeRateCardRepo) List(_ context.Context, page, limit int) ([]model.RateCard, int64, error) {
	return nil, 0, nil
}

func (f *fakeRateCardRepo) FindActiveAt(_ context.Context, _ time.Time) (*model.RateCard, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRateCardRepo) FindOverlapping(_ context.Context, _ time.Time, _ *time.Time, _ *uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeAuditRepo struct {
	entries []*model.AuditLog
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}

func TestDeleteRateCardWritesAuditEntry(t *testing.T) {
	cardID := uuid.New()
	cardRepo := &fakeRateCardRepo{cards: map[uuid.UUID]*model.RateCard{
		cardID: {ID: cardID, Name: "2026 interlink rates"},
	}}
	auditRepo := &fakeAuditRepo{}
	svc := NewRateCardService(cardRepo, auditRepo)

	err := svc.DeleteRateCard(context.Background(), cardID.String(), uuid.NewString())
	require.NoError(t, err)

	require.Len(t, cardRepo.deleted, 1)
	assert.Equal(t, cardID, cardRepo.deleted[0])

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, model.ActionDeleteRateCard, entry.Action)
	assert.Equal(t, cardID.String(), entry.EntityID)
	assert.Equal(t, "2026 interlink rates", entry.EntityName)
	assert.Contains(t, entry.Details, cardID.String())
}

func TestDeleteRateCardUnknownID(t *testing.T) {
	svc := NewRateCardService(&fakeRateCardRepo{cards: map[uuid.UUID]*model.RateCard{}}, &fakeAuditRepo{})

	err := svc.DeleteRateCard(context.Background(), uuid.NewString(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
