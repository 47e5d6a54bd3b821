package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
)

type PropertyRepo struct{ db *gorm.DB }

func NewPropertyRepo(db *gorm.DB) *PropertyRepo {
	return &PropertyRepo{db: db}
}

func (r *PropertyRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Property{})
}

func (r *PropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PropertyRepo) ByID(ctx context.Context, id string) (*domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("property not found")
		}
		return nil, err
	}
	return &p, nil
}

type PropertyFilter struct {
	OwnerID      string
	Location     string
	PropertyType string
	MinPrice     float64
	MaxPrice     float64
	Status       domain.PropertyStatus
}

func (r *PropertyRepo) List(ctx context.Context, f PropertyFilter) ([]domain.Property, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Property{})
	if f.OwnerID != "" {
		qb = qb.Where("owner_id = ?", f.OwnerID)
	}
	if f.Location != "" {
		qb = qb.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.PropertyType != "" {
		qb = qb.Where("property_type = ?", f.PropertyType)
	}
	if f.MinPrice > 0 {
		qb = qb.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		qb = qb.Where("price <= ?", f.MaxPrice)
	}
	if f.Status != "" {
		qb = qb.Where("status = ?", f.Status)
	}
	var out []domain.Property
	if err := qb.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PropertyRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Property, error) {
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&domain.Property{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.ByID(ctx, id)
}

func (r *PropertyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Property{}, "id = ?", id).Error
}
