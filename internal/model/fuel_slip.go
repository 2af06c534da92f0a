package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SlipSource enum constants
const (
	SlipSourceManual = "MANUAL"
	SlipSourceOCR    = "OCR"
)

// FuelSlip is a single fuel purchase ledger entry, captured manually or
// pre-filled from OCR text and verified by an operator before saving.
type FuelSlip struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SlipDate      time.Time       `gorm:"type:date;not null;index" json:"slip_date"`
	TruckReg      string          `gorm:"type:varchar(20);not null;index" json:"truck_reg"`
	Litres        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"litres"`
	PricePerLitre decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_litre"`
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"` // = litres * price_per_litre
	Reference     string          `gorm:"type:varchar(50)" json:"reference"`        // slip/receipt number
	Source        string          `gorm:"type:varchar(10);not null;default:'MANUAL'" json:"source"`
	Station       string          `gorm:"type:varchar(255)" json:"station"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid;index" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
