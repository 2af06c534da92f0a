package model

import (
	"time"

	"github.com/google/uuid"
)

// TripEstimate is the persisted snapshot of one route calculation:
// inputs, cost breakdown, profitability and cashflow risk, frozen at
// calculation time. The engine stays stateless; this row is the
// caller-owned "last results" record keyed by ID.
type TripEstimate struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LoadingPoint    string     `gorm:"type:varchar(255)" json:"loading_point"`
	OffloadingPoint string     `gorm:"type:varchar(255)" json:"offloading_point"`
	RateCardID      *uuid.UUID `gorm:"type:uuid;index" json:"rate_card_id"`
	RateCard        *RateCard  `gorm:"foreignKey:RateCardID" json:"rate_card,omitempty"`

	// Inputs
	DistanceKm        float64 `gorm:"not null" json:"distance_km"`
	LoadTons          float64 `gorm:"not null" json:"load_tons"`
	FuelPricePerLitre float64 `gorm:"not null" json:"fuel_price_per_litre"`
	TollFees          float64 `gorm:"not null" json:"toll_fees"`
	TurnaroundHours   float64 `gorm:"not null" json:"turnaround_time_hours"`
	RatePerTon        float64 `gorm:"not null" json:"rate_per_ton"`
	PaymentTerms      string  `gorm:"type:varchar(10);not null" json:"payment_terms"`

	// Cost breakdown
	FuelCost             float64 `gorm:"not null" json:"fuel_cost"`
	DriverCost           float64 `gorm:"not null" json:"driver_cost"`
	VehicleOperatingCost float64 `gorm:"not null" json:"vehicle_operating_cost"`
	AdminOverhead        float64 `gorm:"not null" json:"admin_overhead"`
	TotalCost            float64 `gorm:"not null" json:"total_cost"`

	// Profitability
	TotalRevenue          float64 `gorm:"not null" json:"total_revenue"`
	Profit                float64 `gorm:"not null;index" json:"profit"`
	ProfitMarginPct       float64 `gorm:"not null" json:"profit_margin_pct"`
	CostPerTon            float64 `gorm:"not null" json:"cost_per_ton"`
	RecommendedRatePerTon float64 `gorm:"not null" json:"recommended_rate_per_ton"`
	RecommendedRatePerKm  float64 `gorm:"not null" json:"recommended_rate_per_km"`

	// Rate assumptions frozen at calculation time. Later edits to the
	// linked rate card must not shift this row's figures, so what-if
	// baselines rebuild from these columns, not from the card.
	FuelConsumptionPerKm      float64 `gorm:"not null" json:"fuel_consumption_per_km"`
	DriverCostPerHour         float64 `gorm:"not null" json:"driver_cost_per_hour"`
	VehicleOperatingCostPerKm float64 `gorm:"not null" json:"vehicle_operating_cost_per_km"`
	AdminOverheadPct          float64 `gorm:"not null" json:"admin_overhead_pct"`
	TargetMarkupPct           float64 `gorm:"not null" json:"target_markup_pct"`
	AnnualOpportunityRate     float64 `gorm:"not null" json:"annual_opportunity_rate"`

	// Cashflow risk
	RiskTier        string  `gorm:"type:varchar(10);not null" json:"risk_tier"`
	DaysToPayment   int     `gorm:"not null" json:"days_to_payment"`
	OpportunityCost float64 `gorm:"not null" json:"opportunity_cost"`
	AdjustedProfit  float64 `gorm:"not null" json:"adjusted_profit"`

	CreatedBy *uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
