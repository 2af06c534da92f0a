package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/engine"
	"github.com/SkhumbuzoT/prime-tools/internal/model"
	"github.com/SkhumbuzoT/prime-tools/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateRateCardRequest struct {
	Name                      string `json:"name" binding:"required"`
	FuelConsumptionPerKm      string `json:"fuel_consumption_per_km" binding:"required"`      // litres/km, decimal string e.g. "0.35"
	DriverCostPerHour         string `json:"driver_cost_per_hour" binding:"required"`         // R/hour
	VehicleOperatingCostPerKm string `json:"vehicle_operating_cost_per_km" binding:"required"` // R/km
	AdminOverheadPct          string `json:"admin_overhead_pct" binding:"required"`           // fraction, "0.08" = 8%
	TargetMarkupPct           string `json:"target_markup_pct" binding:"required"`            // fraction, "0.20" = 20%
	AnnualOpportunityRate     string `json:"annual_opportunity_rate" binding:"required"`      // fraction, "0.10" = 10% p.a.
	EffectiveFrom             string `json:"effective_from" binding:"required"`               // YYYY-MM-DD
	EffectiveTo               string `json:"effective_to"`                                    // YYYY-MM-DD, nullable
	Description               string `json:"description"`
}

type UpdateRateCardRequest = CreateRateCardRequest

type RateCardResponse struct {
	ID                        string  `json:"id"`
	Name                      string  `json:"name"`
	FuelConsumptionPerKm      string  `json:"fuel_consumption_per_km"`
	DriverCostPerHour         string  `json:"driver_cost_per_hour"`
	VehicleOperatingCostPerKm string  `json:"vehicle_operating_cost_per_km"`
	AdminOverheadPct          string  `json:"admin_overhead_pct"`
	TargetMarkupPct           string  `json:"target_markup_pct"`
	AnnualOpportunityRate     string  `json:"annual_opportunity_rate"`
	EffectiveFrom             string  `json:"effective_from"`
	EffectiveTo               *string `json:"effective_to"`
	Description               string  `json:"description"`
	CreatedAt                 string  `json:"created_at"`
}

// --- Interface ---

type RateCardService interface {
	CreateRateCard(ctx context.Context, req CreateRateCardRequest, userID string) (RateCardResponse, error)
	UpdateRateCard(ctx context.Context, id string, req UpdateRateCardRequest, userID string) (RateCardResponse, error)
	DeleteRateCard(ctx context.Context, id string, userID string) error
	GetRateCard(ctx context.Context, id string) (RateCardResponse, error)
	ListRateCards(ctx context.Context, page, limit int) ([]RateCardResponse, int64, error)
	GetActiveRateCard(ctx context.Context, targetDate time.Time) (*RateCardResponse, error)
	// ResolveConfig loads a card's engine config, or the defaults if id is nil
	// and no card is active on the given date.
	ResolveConfig(ctx context.Context, id *uuid.UUID, targetDate time.Time) (engine.CostRateConfig, engine.RiskConfig, *uuid.UUID, error)
}

type rateCardService struct {
	repo      repository.RateCardRepository
	auditRepo repository.AuditRepository
}

func NewRateCardService(repo repository.RateCardRepository, auditRepo repository.AuditRepository) RateCardService {
	return &rateCardService{repo: repo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *rateCardService) CreateRateCard(ctx context.Context, req CreateRateCardRequest, userID string) (RateCardResponse, error) {
	card, err := parseRateCardFields(req)
	if err != nil {
		return RateCardResponse{}, err
	}

	// Validate overlap
	count, err := s.repo.FindOverlapping(ctx, card.EffectiveFrom, card.EffectiveTo, nil)
	if err != nil {
		return RateCardResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return RateCardResponse{}, fmt.Errorf("a rate card already exists with overlapping effective dates")
	}

	if err := s.repo.Create(ctx, card); err != nil {
		return RateCardResponse{}, fmt.Errorf("failed to create rate card: %w", err)
	}

	logAudit(ctx, s.auditRepo, parseUserUUID(userID), model.ActionCreateRateCard, card.ID.String(), card.Name, map[string]interface{}{
		"effective_from": req.EffectiveFrom,
		"effective_to":   req.EffectiveTo,
	})

	return toRateCardResponse(*card), nil
}

func (s *rateCardService) UpdateRateCard(ctx context.Context, id string, req UpdateRateCardRequest, userID string) (RateCardResponse, error) {
	cardID, err := uuid.Parse(id)
	if err != nil {
		return RateCardResponse{}, fmt.Errorf("invalid rate card id: %w", err)
	}

	existing, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RateCardResponse{}, fmt.Errorf("rate card not found")
		}
		return RateCardResponse{}, fmt.Errorf("failed to fetch rate card: %w", err)
	}

	parsed, err := parseRateCardFields(req)
	if err != nil {
		return RateCardResponse{}, err
	}

	// Validate overlap (exclude self)
	count, err := s.repo.FindOverlapping(ctx, parsed.EffectiveFrom, parsed.EffectiveTo, &cardID)
	if err != nil {
		return RateCardResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return RateCardResponse{}, fmt.Errorf("a rate card already exists with overlapping effective dates")
	}

	existing.Name = parsed.Name
	existing.FuelConsumptionPerKm = parsed.FuelConsumptionPerKm
	existing.DriverCostPerHour = parsed.DriverCostPerHour
	existing.VehicleOperatingCostPerKm = parsed.VehicleOperatingCostPerKm
	existing.AdminOverheadPct = parsed.AdminOverheadPct
	existing.TargetMarkupPct = parsed.TargetMarkupPct
	existing.AnnualOpportunityRate = parsed.AnnualOpportunityRate
	existing.EffectiveFrom = parsed.EffectiveFrom
	existing.EffectiveTo = parsed.EffectiveTo
	existing.Description = parsed.Description

	if err := s.repo.Update(ctx, existing); err != nil {
		return RateCardResponse{}, fmt.Errorf("failed to update rate card: %w", err)
	}

	logAudit(ctx, s.auditRepo, parseUserUUID(userID), model.ActionUpdateRateCard, existing.ID.String(), existing.Name, map[string]interface{}{
		"effective_from": req.EffectiveFrom,
		"effective_to":   req.EffectiveTo,
	})

	return toRateCardResponse(*existing), nil
}

func (s *rateCardService) DeleteRateCard(ctx context.Context, id string, userID string) error {
	cardID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid rate card id: %w", err)
	}

	card, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("rate card not found")
		}
		return fmt.Errorf("failed to fetch rate card: %w", err)
	}

	if err := s.repo.Delete(ctx, cardID); err != nil {
		return fmt.Errorf("failed to delete rate card: %w", err)
	}

	logAudit(ctx, s.auditRepo, parseUserUUID(userID), model.ActionDeleteRateCard, id, card.Name, map[string]interface{}{"deleted_id": id})
	return nil
}

func (s *rateCardService) GetRateCard(ctx context.Context, id string) (RateCardResponse, error) {
	cardID, err := uuid.Parse(id)
	if err != nil {
		return RateCardResponse{}, fmt.Errorf("invalid rate card id: %w", err)
	}

	card, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RateCardResponse{}, fmt.Errorf("rate card not found")
		}
		return RateCardResponse{}, fmt.Errorf("failed to fetch rate card: %w", err)
	}

	return toRateCardResponse(*card), nil
}

func (s *rateCardService) ListRateCards(ctx context.Context, page, limit int) ([]RateCardResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	cards, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]RateCardResponse, 0, len(cards))
	for _, c := range cards {
		res = append(res, toRateCardResponse(c))
	}

	return res, total, nil
}

func (s *rateCardService) GetActiveRateCard(ctx context.Context, targetDate time.Time) (*RateCardResponse, error) {
	card, err := s.repo.FindActiveAt(ctx, targetDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No active card — not an error
		}
		return nil, fmt.Errorf("failed to query active rate card: %w", err)
	}

	res := toRateCardResponse(*card)
	return &res, nil
}

func (s *rateCardService) ResolveConfig(ctx context.Context, id *uuid.UUID, targetDate time.Time) (engine.CostRateConfig, engine.RiskConfig, *uuid.UUID, error) {
	var card *model.RateCard
	var err error

	if id != nil {
		card, err = s.repo.FindByID(ctx, *id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return engine.CostRateConfig{}, engine.RiskConfig{}, nil, fmt.Errorf("rate card not found")
			}
			return engine.CostRateConfig{}, engine.RiskConfig{}, nil, fmt.Errorf("failed to fetch rate card: %w", err)
		}
	} else {
		card, err = s.repo.FindActiveAt(ctx, targetDate)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No configured card; fall back to the built-in defaults.
				return engine.DefaultCostRates(), engine.DefaultRiskConfig(), nil, nil
			}
			return engine.CostRateConfig{}, engine.RiskConfig{}, nil, fmt.Errorf("failed to query active rate card: %w", err)
		}
	}

	rates := engine.CostRateConfig{
		FuelConsumptionPerKm:      card.FuelConsumptionPerKm.InexactFloat64(),
		DriverCostPerHour:         card.DriverCostPerHour.InexactFloat64(),
		VehicleOperatingCostPerKm: card.VehicleOperatingCostPerKm.InexactFloat64(),
		AdminOverheadPct:          card.AdminOverheadPct.InexactFloat64(),
		TargetMarkupPct:           card.TargetMarkupPct.InexactFloat64(),
	}
	risk := engine.RiskConfig{
		AnnualOpportunityRate: card.AnnualOpportunityRate.InexactFloat64(),
	}
	return rates, risk, &card.ID, nil
}

// --- Helpers ---

func parseRateCardFields(req CreateRateCardRequest) (*model.RateCard, error) {
	parseRate := func(label, value string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid %s value: %w", label, err)
		}
		if d.IsNegative() {
			return decimal.Zero, fmt.Errorf("%s must not be negative", label)
		}
		return d, nil
	}

	fuel, err := parseRate("fuel_consumption_per_km", req.FuelConsumptionPerKm)
	if err != nil {
		return nil, err
	}
	driver, err := parseRate("driver_cost_per_hour", req.DriverCostPerHour)
	if err != nil {
		return nil, err
	}
	vehicle, err := parseRate("vehicle_operating_cost_per_km", req.VehicleOperatingCostPerKm)
	if err != nil {
		return nil, err
	}
	admin, err := parseRate("admin_overhead_pct", req.AdminOverheadPct)
	if err != nil {
		return nil, err
	}
	markup, err := parseRate("target_markup_pct", req.TargetMarkupPct)
	if err != nil {
		return nil, err
	}
	opportunity, err := parseRate("annual_opportunity_rate", req.AnnualOpportunityRate)
	if err != nil {
		return nil, err
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid effective_from date format (expected YYYY-MM-DD): %w", err)
	}

	var effectiveTo *time.Time
	if req.EffectiveTo != "" {
		t, err := time.Parse("2006-01-02", req.EffectiveTo)
		if err != nil {
			return nil, fmt.Errorf("invalid effective_to date format (expected YYYY-MM-DD): %w", err)
		}
		if t.Before(effectiveFrom) {
			return nil, fmt.Errorf("effective_to must not precede effective_from")
		}
		effectiveTo = &t
	}

	return &model.RateCard{
		Name:                      req.Name,
		FuelConsumptionPerKm:      fuel,
		DriverCostPerHour:         driver,
		VehicleOperatingCostPerKm: vehicle,
		AdminOverheadPct:          admin,
		TargetMarkupPct:           markup,
		AnnualOpportunityRate:     opportunity,
		EffectiveFrom:             effectiveFrom,
		EffectiveTo:               effectiveTo,
		Description:               req.Description,
	}, nil
}

func toRateCardResponse(c model.RateCard) RateCardResponse {
	resp := RateCardResponse{
		ID:                        c.ID.String(),
		Name:                      c.Name,
		FuelConsumptionPerKm:      c.FuelConsumptionPerKm.StringFixed(4),
		DriverCostPerHour:         c.DriverCostPerHour.StringFixed(2),
		VehicleOperatingCostPerKm: c.VehicleOperatingCostPerKm.StringFixed(2),
		AdminOverheadPct:          c.AdminOverheadPct.StringFixed(4),
		TargetMarkupPct:           c.TargetMarkupPct.StringFixed(4),
		AnnualOpportunityRate:     c.AnnualOpportunityRate.StringFixed(4),
		EffectiveFrom:             c.EffectiveFrom.Format("2006-01-02"),
		Description:               c.Description,
		CreatedAt:                 c.CreatedAt.Format(time.RFC3339),
	}
	if c.EffectiveTo != nil {
		s := c.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &s
	}
	return resp
}

func parseUserUUID(userID string) *uuid.UUID {
	if userID == "" {
		return nil
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &parsed
}
