package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/domain"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository on the given session.
func NewCartRepository(db *gorm.DB) *cartRepository { //nolint:revive
	return &cartRepository{db: db}
}

func (r *cartRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	var m Cart
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrCartNotFound)
	}
	return mapModelToCart(&m)
}

func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	m, err := mapCartToModel(cart)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	m, err := mapCartToModel(cart)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&Cart{}).Where("id = ?", m.ID).
		Updates(map[string]any{
			"items":          m.Items,
			"total_amount":   m.TotalAmount,
			"total_currency": m.TotalCurrency,
			"expires_at":     m.ExpiresAt,
			"updated_at":     m.UpdatedAt,
		}).Error
}

func (r *cartRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", cutoff).Delete(&Cart{})
	return res.RowsAffected, res.Error
}
