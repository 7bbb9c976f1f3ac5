package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/domain"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a booking repository on the given session.
func NewBookingRepository(db *gorm.DB) *bookingRepository { //nolint:revive
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m, err := mapBookingToModel(b)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *bookingRepository) SetSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	return r.db.WithContext(ctx).Model(&Booking{}).Where("id = ?", id).
		Updates(map[string]any{
			"session_id": sessionID,
			"updated_at": time.Now(),
		}).Error
}

func (r *bookingRepository) FindPendingByCart(ctx context.Context, cartID uuid.UUID) (*domain.Booking, error) {
	var m Booking
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND status = ?", cartID, string(domain.BookingPending)).
		Order("created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapModelToBooking(&m)
}

// UpdateStatusIfPending transitions PENDING -> to with the guard in the WHERE
// clause, so a booking already finalized by a concurrent callback is left
// untouched and reported as unchanged.
func (r *bookingRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, to domain.BookingStatus) (bool, error) {
	if !domain.BookingPending.CanTransitionTo(to) {
		return false, nil
	}
	res := r.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *bookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	var m Booking
	if err := r.db.WithContext(ctx).First(&m, "reference = ?", reference).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return mapModelToBooking(&m)
}
