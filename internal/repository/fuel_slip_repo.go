package repository

import (
	"context"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuelSlipRepository interface {
	Create(ctx context.Context, slip *model.FuelSlip) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FuelSlip, error)
	List(ctx context.Context, page, limit int) ([]model.FuelSlip, int64, error)
	ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]model.FuelSlip, error)
}

type fuelSlipRepository struct {
	db *gorm.DB
}

func NewFuelSlipRepository(db *gorm.DB) FuelSlipRepository {
	return &fuelSlipRepository{db: db}
}

func (r *fuelSlipRepository) Create(ctx context.Context, slip *model.FuelSlip) error {
	return GetDB(ctx, r.db).Create(slip).Error
}

func (r *fuelSlipRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FuelSlip, error) {
	var slip model.FuelSlip
	if err := GetDB(ctx, r.db).First(&slip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slip, nil
}

func (r *fuelSlipRepository) List(ctx context.Context, page, limit int) ([]model.FuelSlip, int64, error) {
	var slips []model.FuelSlip
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.FuelSlip{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("slip_date desc, created_at desc").Offset(offset).Limit(limit).Find(&slips).Error; err != nil {
		return nil, 0, err
	}

	return slips, total, nil
}

func (r *fuelSlipRepository) ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]model.FuelSlip, error) {
	var slips []model.FuelSlip
	if err := GetDB(ctx, r.db).
		Where("slip_date >= ? AND slip_date <= ?", startDate, endDate).
		Order("slip_date asc").
		Find(&slips).Error; err != nil {
		return nil, err
	}
	return slips, nil
}
