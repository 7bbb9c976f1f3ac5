package repository

import (
	"context"

	"github.com/tripmena/backend/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundaries plus repository access bound to the
// same session, so a checkout's cart read and booking write cannot straddle
// two connections.
type UoW struct {
	db *gorm.DB
	// tx is set inside Do; outside a transaction, repositories run on db.
	tx *gorm.DB
}

// NewUoW creates a unit of work for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction boundary. If fn returns an error the
// transaction is rolled back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Carts returns the cart repository bound to the current session.
func (u *UoW) Carts() (repository.CartRepository, error) {
	return NewCartRepository(u.session()), nil
}

// Bookings returns the booking repository bound to the current session.
func (u *UoW) Bookings() (repository.BookingRepository, error) {
	return NewBookingRepository(u.session()), nil
}

// Catalog returns the catalog repository bound to the current session.
func (u *UoW) Catalog() (repository.CatalogRepository, error) {
	return NewCatalogRepository(u.session()), nil
}
