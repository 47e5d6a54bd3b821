package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
)

// ErrPaymentExists surfaces the unique index on booking_id, the backstop for
// two confirmations racing through the find-then-create guard.
var ErrPaymentExists = errors.New("payment already exists for booking")

type PaymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Payment{})
}

func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPaymentExists
	}
	return err
}

func (r *PaymentRepo) ByID(ctx context.Context, id string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("payment not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) ByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound("payment not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Payment, error) {
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&domain.Payment{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.ByID(ctx, id)
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Payment{}, "id = ?", id).Error
}

func (r *PaymentRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepo) ListByRenter(ctx context.Context, renterID string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
