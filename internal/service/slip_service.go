package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/model"
	"github.com/SkhumbuzoT/prime-tools/internal/ocr"
	"github.com/SkhumbuzoT/prime-tools/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateFuelSlipRequest struct {
	SlipDate      string `json:"slip_date" binding:"required"` // YYYY-MM-DD
	TruckReg      string `json:"truck_reg" binding:"required"`
	Litres        string `json:"litres" binding:"required"`          // decimal string
	PricePerLitre string `json:"price_per_litre" binding:"required"` // decimal string
	Reference     string `json:"reference"`
	Station       string `json:"station"`
	Source        string `json:"source" binding:"omitempty,oneof=MANUAL OCR"`
}

type ExtractSlipRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractSlipResponse returns the raw extracted fields plus, when every
// field coerces cleanly, a ready-to-submit create payload.
type ExtractSlipResponse struct {
	Fields   ocr.ExtractedSlipFields `json:"fields"`
	Prefill  *CreateFuelSlipRequest  `json:"prefill,omitempty"`
	Warnings []string                `json:"warnings,omitempty"`
}

type FuelSlipReportResponse struct {
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	SlipCount   int                `json:"slip_count"`
	TotalLitres string             `json:"total_litres"`
	TotalSpend  string             `json:"total_spend"`
	PerTruck    []TruckFuelSummary `json:"per_truck"`
	Slips       []model.FuelSlip   `json:"slips"`
}

type TruckFuelSummary struct {
	TruckReg    string `json:"truck_reg"`
	SlipCount   int    `json:"slip_count"`
	TotalLitres string `json:"total_litres"`
	TotalSpend  string `json:"total_spend"`
}

// --- Interface ---

type FuelSlipService interface {
	CreateSlip(ctx context.Context, req CreateFuelSlipRequest, userID string) (*model.FuelSlip, error)
	GetSlip(ctx context.Context, id string) (*model.FuelSlip, error)
	ListSlips(ctx context.Context, page, limit int) ([]model.FuelSlip, int64, error)
	ExtractSlip(req ExtractSlipRequest) ExtractSlipResponse
	Report(ctx context.Context, startDate, endDate time.Time) (*FuelSlipReportResponse, error)
}

type fuelSlipService struct {
	repo      repository.FuelSlipRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewFuelSlipService(
	repo repository.FuelSlipRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) FuelSlipService {
	return &fuelSlipService{repo: repo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

func (s *fuelSlipService) CreateSlip(ctx context.Context, req CreateFuelSlipRequest, userID string) (*model.FuelSlip, error) {
	slipDate, err := time.Parse("2006-01-02", req.SlipDate)
	if err != nil {
		return nil, fmt.Errorf("invalid slip_date format (expected YYYY-MM-DD): %w", err)
	}

	litres, err := decimal.NewFromString(req.Litres)
	if err != nil {
		return nil, fmt.Errorf("invalid litres value: %w", err)
	}
	if !litres.IsPositive() {
		return nil, fmt.Errorf("litres must be positive")
	}

	price, err := decimal.NewFromString(req.PricePerLitre)
	if err != nil {
		return nil, fmt.Errorf("invalid price_per_litre value: %w", err)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("price_per_litre must be positive")
	}

	source := req.Source
	if source == "" {
		source = model.SlipSourceManual
	}

	slip := &model.FuelSlip{
		SlipDate:      slipDate,
		TruckReg:      req.TruckReg,
		Litres:        litres,
		PricePerLitre: price,
		// The ledger total is always litres x price, never a client figure.
		Total:     litres.Mul(price).Round(2),
		Reference: req.Reference,
		Station:   req.Station,
		Source:    source,
		CreatedBy: parseUserUUID(userID),
	}

	// ---- DB Transaction via TransactionManager ----
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, slip); createErr != nil {
			return fmt.Errorf("failed to create fuel slip: %w", createErr)
		}

		auditDetails, _ := json.Marshal(map[string]interface{}{
			"slip_date": req.SlipDate,
			"truck_reg": req.TruckReg,
			"litres":    slip.Litres.StringFixed(2),
			"total":     slip.Total.StringFixed(2),
			"source":    source,
		})
		audit := &model.AuditLog{
			UserID:     slip.CreatedBy,
			Action:     model.ActionCreateFuelSlip,
			EntityID:   slip.ID.String(),
			EntityName: req.TruckReg + " " + req.SlipDate,
			Details:    string(auditDetails),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write fuel slip audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return slip, nil
}

func (s *fuelSlipService) GetSlip(ctx context.Context, id string) (*model.FuelSlip, error) {
	slipID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid fuel slip id: %w", err)
	}

	slip, err := s.repo.FindByID(ctx, slipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fuel slip not found")
		}
		return nil, fmt.Errorf("failed to fetch fuel slip: %w", err)
	}
	return slip, nil
}

func (s *fuelSlipService) ListSlips(ctx context.Context, page, limit int) ([]model.FuelSlip, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

// ExtractSlip runs the OCR text parser and, when all fields are usable,
// prefills a create payload. It never persists anything; the operator
// verifies and submits the prefill separately.
func (s *fuelSlipService) ExtractSlip(req ExtractSlipRequest) ExtractSlipResponse {
	fields := ocr.ExtractSlipFields(req.Text)
	res := ExtractSlipResponse{Fields: fields}

	values, err := ocr.CoerceSlipValues(fields)
	if err != nil {
		res.Warnings = append(res.Warnings, err.Error())
		return res
	}

	// Coercion defaults missing fields; a prefill needs the essentials.
	if values.Date.IsZero() {
		res.Warnings = append(res.Warnings, "no date found")
	}
	if values.TruckReg == "" {
		res.Warnings = append(res.Warnings, "no truck registration found")
	}
	if !values.Litres.IsPositive() {
		res.Warnings = append(res.Warnings, "no litres figure found")
	}
	if !values.PricePerLitre.IsPositive() {
		res.Warnings = append(res.Warnings, "no price per litre found")
	}
	if len(res.Warnings) > 0 {
		return res
	}

	res.Prefill = &CreateFuelSlipRequest{
		SlipDate:      values.Date.Format("2006-01-02"),
		TruckReg:      values.TruckReg,
		Litres:        values.Litres.StringFixed(2),
		PricePerLitre: values.PricePerLitre.StringFixed(2),
		Reference:     values.Reference,
		Source:        model.SlipSourceOCR,
	}
	return res
}

func (s *fuelSlipService) Report(ctx context.Context, startDate, endDate time.Time) (*FuelSlipReportResponse, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end_date must not precede start_date")
	}

	slips, err := s.repo.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fuel slips: %w", err)
	}

	totalLitres := decimal.Zero
	totalSpend := decimal.Zero
	perTruckLitres := make(map[string]decimal.Decimal)
	perTruckSpend := make(map[string]decimal.Decimal)
	perTruckCount := make(map[string]int)
	var truckOrder []string

	for _, slip := range slips {
		totalLitres = totalLitres.Add(slip.Litres)
		totalSpend = totalSpend.Add(slip.Total)

		if _, seen := perTruckCount[slip.TruckReg]; !seen {
			truckOrder = append(truckOrder, slip.TruckReg)
		}
		perTruckLitres[slip.TruckReg] = perTruckLitres[slip.TruckReg].Add(slip.Litres)
		perTruckSpend[slip.TruckReg] = perTruckSpend[slip.TruckReg].Add(slip.Total)
		perTruckCount[slip.TruckReg]++
	}

	perTruck := make([]TruckFuelSummary, 0, len(truckOrder))
	for _, reg := range truckOrder {
		perTruck = append(perTruck, TruckFuelSummary{
			TruckReg:    reg,
			SlipCount:   perTruckCount[reg],
			TotalLitres: perTruckLitres[reg].StringFixed(2),
			TotalSpend:  perTruckSpend[reg].StringFixed(2),
		})
	}

	return &FuelSlipReportResponse{
		StartDate:   startDate.Format("2006-01-02"),
		EndDate:     endDate.Format("2006-01-02"),
		SlipCount:   len(slips),
		TotalLitres: totalLitres.StringFixed(2),
		TotalSpend:  totalSpend.StringFixed(2),
		PerTruck:    perTruck,
		Slips:       slips,
	}, nil
}
