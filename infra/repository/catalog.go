package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/domain"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a read-only catalog repository on the given
// session.
func NewCatalogRepository(db *gorm.DB) *catalogRepository { //nolint:revive
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetActivity(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var m Activity
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrActivityNotFound)
	}
	a := mapModelToActivity(&m)
	return &a, nil
}

func (r *catalogRepository) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	var ms []Activity
	if err := r.db.WithContext(ctx).Order("name").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Activity, 0, len(ms))
	for i := range ms {
		out = append(out, mapModelToActivity(&ms[i]))
	}
	return out, nil
}

func (r *catalogRepository) GetDeal(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	var m Deal
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrDealNotFound)
	}
	d, err := mapModelToDeal(&m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *catalogRepository) ListDealsByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.Deal, error) {
	var ms []Deal
	if err := r.db.WithContext(ctx).Where("activity_id = ?", activityID).Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Deal, 0, len(ms))
	for i := range ms {
		d, err := mapModelToDeal(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *catalogRepository) GetHolidayPackage(ctx context.Context, id uuid.UUID) (*domain.HolidayPackage, error) {
	var m HolidayPackage
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrPackageNotFound)
	}
	return mapModelToPackage(&m)
}

func (r *catalogRepository) GetComboOffer(ctx context.Context, id uuid.UUID) (*domain.ComboOffer, error) {
	var m ComboOffer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrComboNotFound)
	}
	return mapModelToCombo(&m)
}
