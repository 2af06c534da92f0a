package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateCard stores a named set of cost-model assumptions with temporal
// validity. Every formula variant of the old spreadsheets becomes a rate
// card instead of a code fork. Percentages are fractions (0.08 = 8%).
type RateCard struct {
	ID                        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                      string          `gorm:"type:varchar(100);not null;index" json:"name"`
	FuelConsumptionPerKm      decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"fuel_consumption_per_km"` // litres per km
	DriverCostPerHour         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"driver_cost_per_hour"`
	VehicleOperatingCostPerKm decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"vehicle_operating_cost_per_km"` // maintenance, insurance, depreciation
	AdminOverheadPct          decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"admin_overhead_pct"`
	TargetMarkupPct           decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"target_markup_pct"`
	AnnualOpportunityRate     decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"annual_opportunity_rate"`
	EffectiveFrom             time.Time       `gorm:"type:date;not null;index" json:"effective_from"`
	EffectiveTo               *time.Time      `gorm:"type:date;index" json:"effective_to"` // nullable = currently active
	Description               string          `gorm:"type:text" json:"description"`
	CreatedAt                 time.Time       `json:"created_at"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}
