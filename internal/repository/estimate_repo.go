package repository

import (
	"context"

	"github.com/SkhumbuzoT/prime-tools/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstimateRepository interface {
	Create(ctx context.Context, estimate *model.TripEstimate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TripEstimate, error)
	List(ctx context.Context, page, limit int) ([]model.TripEstimate, int64, error)
}

type estimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) EstimateRepository {
	return &estimateRepository{db: db}
}

func (r *estimateRepository) Create(ctx context.Context, estimate *model.TripEstimate) error {
	return GetDB(ctx, r.db).Create(estimate).Error
}

func (r *estimateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TripEstimate, error) {
	var estimate model.TripEstimate
	if err := GetDB(ctx, r.db).Preload("RateCard").First(&estimate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &estimate, nil
}

func (r *estimateRepository) List(ctx context.Context, page, limit int) ([]model.TripEstimate, int64, error) {
	var estimates []model.TripEstimate
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.TripEstimate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&estimates).Error; err != nil {
		return nil, 0, err
	}

	return estimates, total, nil
}
