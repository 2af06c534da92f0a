package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/engine"
	"github.com/SkhumbuzoT/prime-tools/internal/model"
	"github.com/SkhumbuzoT/prime-tools/internal/repository"
	"github.com/SkhumbuzoT/prime-tools/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateEstimateRequest struct {
	LoadingPoint      string  `json:"loading_point"`
	OffloadingPoint   string  `json:"offloading_point"`
	DistanceKm        float64 `json:"distance_km" binding:"required,gt=0"`
	LoadTons          float64 `json:"load_tons" binding:"required,gt=0"`
	FuelPricePerLitre float64 `json:"fuel_price_per_litre" binding:"required,gt=0"`
	TollFees          float64 `json:"toll_fees" binding:"gte=0"`
	TurnaroundHours   float64 `json:"turnaround_time_hours" binding:"required,gt=0"`
	RatePerTon        float64 `json:"rate_per_ton" binding:"gte=0"`
	PaymentTerms      string  `json:"payment_terms" binding:"required,oneof=CASH DAILY WEEKLY MONTHLY"`
	RateCardID        string  `json:"rate_card_id"` // optional; blank = card active today, or defaults
}

type WhatIfRequest struct {
	DistanceKm        *float64 `json:"distance_km" binding:"omitempty,gt=0"`
	LoadTons          *float64 `json:"load_tons" binding:"omitempty,gt=0"`
	FuelPricePerLitre *float64 `json:"fuel_price_per_litre" binding:"omitempty,gt=0"`
	TollFees          *float64 `json:"toll_fees" binding:"omitempty,gte=0"`
	TurnaroundHours   *float64 `json:"turnaround_time_hours" binding:"omitempty,gt=0"`
	RatePerTon        *float64 `json:"rate_per_ton" binding:"omitempty,gte=0"`
	PaymentTerms      *string  `json:"payment_terms" binding:"omitempty,oneof=CASH DAILY WEEKLY MONTHLY"`
}

type LOIRequest struct {
	LoadTons                 float64 `json:"load_tons" binding:"required,gt=0"`
	DistanceKm               float64 `json:"distance_km" binding:"required,gt=0"`
	RatePerTon               float64 `json:"rate_per_ton" binding:"gte=0"`
	DieselPricePerLitre      float64 `json:"diesel_price_per_litre" binding:"required,gt=0"`
	FuelEfficiencyKmPerLitre float64 `json:"fuel_efficiency_km_per_litre" binding:"required,gt=0"`
}

// WhatIfResponse pairs the stored baseline with the recomputed scenario so
// the UI can diff them side by side.
type WhatIfResponse struct {
	EstimateID string        `json:"estimate_id"`
	Baseline   engine.Result `json:"baseline"`
	Scenario   engine.Result `json:"scenario"`
}

// --- Interface ---

type EstimateService interface {
	CreateEstimate(ctx context.Context, req CreateEstimateRequest, userID string) (*model.TripEstimate, error)
	GetEstimate(ctx context.Context, id string) (*model.TripEstimate, error)
	ListEstimates(ctx context.Context, page, limit int) ([]model.TripEstimate, int64, error)
	WhatIf(ctx context.Context, id string, req WhatIfRequest) (*WhatIfResponse, error)
	ComputeLOI(req LOIRequest) (engine.LOIResult, error)
}

type estimateService struct {
	repo        repository.EstimateRepository
	rateCardSvc RateCardService
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	hub         *websocket.Hub
}

func NewEstimateService(
	repo repository.EstimateRepository,
	rateCardSvc RateCardService,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) EstimateService {
	return &estimateService{
		repo:        repo,
		rateCardSvc: rateCardSvc,
		auditRepo:   auditRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *estimateService) CreateEstimate(ctx context.Context, req CreateEstimateRequest, userID string) (*model.TripEstimate, error) {
	inputs := engine.TripInputs{
		DistanceKm:        req.DistanceKm,
		LoadTons:          req.LoadTons,
		FuelPricePerLitre: req.FuelPricePerLitre,
		TollFees:          req.TollFees,
		TurnaroundHours:   req.TurnaroundHours,
		RatePerTon:        req.RatePerTon,
		PaymentTerms:      engine.PaymentTerms(req.PaymentTerms),
	}

	var cardID *uuid.UUID
	if req.RateCardID != "" {
		parsed, err := uuid.Parse(req.RateCardID)
		if err != nil {
			return nil, fmt.Errorf("invalid rate_card_id: %w", err)
		}
		cardID = &parsed
	}

	rates, risk, resolvedCardID, err := s.rateCardSvc.ResolveConfig(ctx, cardID, time.Now())
	if err != nil {
		return nil, err
	}

	result, err := engine.Evaluate(inputs, rates, risk)
	if err != nil {
		return nil, err
	}

	estimate := snapshotResult(result, rates, risk)
	estimate.LoadingPoint = req.LoadingPoint
	estimate.OffloadingPoint = req.OffloadingPoint
	estimate.RateCardID = resolvedCardID
	estimate.CreatedBy = parseUserUUID(userID)

	// ---- DB Transaction via TransactionManager ----
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, estimate); createErr != nil {
			return fmt.Errorf("failed to create estimate: %w", createErr)
		}

		auditDetails, _ := json.Marshal(map[string]interface{}{
			"loading_point":    req.LoadingPoint,
			"offloading_point": req.OffloadingPoint,
			"total_cost":       estimate.TotalCost,
			"profit":           estimate.Profit,
			"risk_tier":        estimate.RiskTier,
		})
		audit := &model.AuditLog{
			UserID:     estimate.CreatedBy,
			Action:     model.ActionCreateEstimate,
			EntityID:   estimate.ID.String(),
			EntityName: routeName(req.LoadingPoint, req.OffloadingPoint),
			Details:    string(auditDetails),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write estimate audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("estimate.created", estimate)
	}

	return estimate, nil
}

func (s *estimateService) GetEstimate(ctx context.Context, id string) (*model.TripEstimate, error) {
	estimateID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid estimate id: %w", err)
	}

	estimate, err := s.repo.FindByID(ctx, estimateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("estimate not found")
		}
		return nil, fmt.Errorf("failed to fetch estimate: %w", err)
	}
	return estimate, nil
}

func (s *estimateService) ListEstimates(ctx context.Context, page, limit int) ([]model.TripEstimate, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

func (s *estimateService) WhatIf(ctx context.Context, id string, req WhatIfRequest) (*WhatIfResponse, error) {
	estimate, err := s.GetEstimate(ctx, id)
	if err != nil {
		return nil, err
	}

	base := baselineInputs(estimate)

	// Re-evaluate with the rate assumptions frozen on the snapshot, so
	// the baseline always matches the stored figures even after the
	// linked rate card is edited, and scenario deltas reflect input
	// changes only.
	rates, risk := snapshotConfig(estimate)

	baseline, err := engine.Evaluate(base, rates, risk)
	if err != nil {
		return nil, err
	}

	override := engine.Override{
		DistanceKm:        req.DistanceKm,
		LoadTons:          req.LoadTons,
		FuelPricePerLitre: req.FuelPricePerLitre,
		TollFees:          req.TollFees,
		TurnaroundHours:   req.TurnaroundHours,
		RatePerTon:        req.RatePerTon,
	}
	if req.PaymentTerms != nil {
		terms := engine.PaymentTerms(*req.PaymentTerms)
		override.PaymentTerms = &terms
	}

	scenario, err := engine.Recompute(base, override, rates, risk)
	if err != nil {
		return nil, err
	}

	return &WhatIfResponse{
		EstimateID: estimate.ID.String(),
		Baseline:   baseline,
		Scenario:   scenario,
	}, nil
}

func (s *estimateService) ComputeLOI(req LOIRequest) (engine.LOIResult, error) {
	return engine.ComputeLOI(engine.LOIInputs{
		LoadTons:                 req.LoadTons,
		DistanceKm:               req.DistanceKm,
		RatePerTon:               req.RatePerTon,
		DieselPricePerLitre:      req.DieselPricePerLitre,
		FuelEfficiencyKmPerLitre: req.FuelEfficiencyKmPerLitre,
	})
}

// --- Helpers ---

func snapshotResult(r engine.Result, rates engine.CostRateConfig, risk engine.RiskConfig) *model.TripEstimate {
	return &model.TripEstimate{
		DistanceKm:        r.Inputs.DistanceKm,
		LoadTons:          r.Inputs.LoadTons,
		FuelPricePerLitre: r.Inputs.FuelPricePerLitre,
		TollFees:          r.Inputs.TollFees,
		TurnaroundHours:   r.Inputs.TurnaroundHours,
		RatePerTon:        r.Inputs.RatePerTon,
		PaymentTerms:      string(r.Inputs.PaymentTerms),

		FuelCost:             r.Costs.FuelCost,
		DriverCost:           r.Costs.DriverCost,
		VehicleOperatingCost: r.Costs.VehicleOperatingCost,
		AdminOverhead:        r.Costs.AdminOverhead,
		TotalCost:            r.Costs.TotalCost,

		TotalRevenue:          r.Profitability.TotalRevenue,
		Profit:                r.Profitability.Profit,
		ProfitMarginPct:       r.Profitability.ProfitMarginPct,
		CostPerTon:            r.Profitability.CostPerTon,
		RecommendedRatePerTon: r.Profitability.RecommendedRatePerTon,
		RecommendedRatePerKm:  r.Profitability.RecommendedRatePerKm,

		FuelConsumptionPerKm:      rates.FuelConsumptionPerKm,
		DriverCostPerHour:         rates.DriverCostPerHour,
		VehicleOperatingCostPerKm: rates.VehicleOperatingCostPerKm,
		AdminOverheadPct:          rates.AdminOverheadPct,
		TargetMarkupPct:           rates.TargetMarkupPct,
		AnnualOpportunityRate:     risk.AnnualOpportunityRate,

		RiskTier:        string(r.Risk.RiskTier),
		DaysToPayment:   r.Risk.DaysToPayment,
		OpportunityCost: r.Risk.OpportunityCost,
		AdjustedProfit:  r.Risk.AdjustedProfit,
	}
}

// snapshotConfig rebuilds the engine configuration from the rate
// assumptions frozen on a stored estimate.
func snapshotConfig(e *model.TripEstimate) (engine.CostRateConfig, engine.RiskConfig) {
	rates := engine.CostRateConfig{
		FuelConsumptionPerKm:      e.FuelConsumptionPerKm,
		DriverCostPerHour:         e.DriverCostPerHour,
		VehicleOperatingCostPerKm: e.VehicleOperatingCostPerKm,
		AdminOverheadPct:          e.AdminOverheadPct,
		TargetMarkupPct:           e.TargetMarkupPct,
	}
	risk := engine.RiskConfig{AnnualOpportunityRate: e.AnnualOpportunityRate}
	return rates, risk
}

func baselineInputs(e *model.TripEstimate) engine.TripInputs {
	return engine.TripInputs{
		DistanceKm:        e.DistanceKm,
		LoadTons:          e.LoadTons,
		FuelPricePerLitre: e.FuelPricePerLitre,
		TollFees:          e.TollFees,
		TurnaroundHours:   e.TurnaroundHours,
		RatePerTon:        e.RatePerTon,
		PaymentTerms:      engine.PaymentTerms(e.PaymentTerms),
	}
}

func routeName(loading, offloading string) string {
	switch {
	case loading == "" && offloading == "":
		return "Unnamed route"
	case loading == "":
		return offloading
	case offloading == "":
		return loading
	default:
		return loading + " to " + offloading
	}
}
