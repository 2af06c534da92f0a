package repository

import (
	"context"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RateCardRepository interface {
	Create(ctx context.Context, card *model.RateCard) error
	Update(ctx context.Context, card *model.RateCard) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RateCard, error)
	List(ctx context.Context, page, limit int) ([]model.RateCard, int64, error)
	FindActiveAt(ctx context.Context, targetDate time.Time) (*model.RateCard, error)
	FindOverlapping(ctx context.Context, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error)
}

type rateCardRepository struct {
	db *gorm.DB
}

func NewRateCardRepository(db *gorm.DB) RateCardRepository {
	return &rateCardRepository{db: db}
}

func (r *rateCardRepository) Create(ctx context.Context, card *model.RateCard) error {
	return GetDB(ctx, r.db).Create(card).Error
}

func (r *rateCardRepository) Update(ctx context.Context, card *model.RateCard) error {
	return GetDB(ctx, r.db).Save(card).Error
}

func (r *rateCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.RateCard{}).Error
}

func (r *rateCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RateCard, error) {
	var card model.RateCard
	if err := GetDB(ctx, r.db).First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *rateCardRepository) List(ctx context.Context, page, limit int) ([]model.RateCard, int64, error) {
	var cards []model.RateCard
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.RateCard{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("effective_from desc").Offset(offset).Limit(limit).Find(&cards).Error; err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}

func (r *rateCardRepository) FindActiveAt(ctx context.Context, targetDate time.Time) (*model.RateCard, error) {
	var card model.RateCard
	if err := GetDB(ctx, r.db).
		Where("effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", targetDate, targetDate).
		Order("effective_from DESC").
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *rateCardRepository) FindOverlapping(ctx context.Context, from time.Time, to *time.Time, excludeID *uuid.UUID) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.RateCard{})

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	if to != nil {
		// New card has end date: overlap if existing.from <= new.to AND (existing.to IS NULL OR existing.to >= new.from)
		query = query.Where("effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", *to, from)
	} else {
		// New card has no end date: overlap if (existing.to IS NULL OR existing.to >= new.from)
		query = query.Where("(effective_to IS NULL OR effective_to >= ?)", from)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
