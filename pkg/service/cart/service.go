// Package cart owns session-scoped cart documents: line mutations, total
// resummation and the rolling expiry window.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/domain/money"
	"github.com/tripmena/backend/pkg/repository"
)

// ErrInvalidPax is returned when a line would have no travellers at all.
var ErrInvalidPax = errors.New("at least one adult or child is required")

// Service mutates carts. Mutations on the same cart from concurrent requests
// are not mutually exclusive; two simultaneous AddItem calls can race on
// resummation. That matches the system's session-per-client usage.
type Service struct {
	uow      repository.UnitOfWork
	ttl      time.Duration
	dealBase currency.Code
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects a clock for deterministic expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a cart service. ttl is the sliding expiry window; dealBase is
// the fallback currency for deals without a base currency tag.
func New(
	uow repository.UnitOfWork,
	ttl time.Duration,
	dealBase currency.Code,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		uow:      uow,
		ttl:      ttl,
		dealBase: dealBase,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItemParams identifies one bookable selection.
type AddItemParams struct {
	ActivityID  uuid.UUID
	DealID      uuid.UUID
	BookingDate time.Time
	Adults      int
	Children    int
}

// Get fetches a cart, lazily creating it. A nil id allocates a new cart key;
// an unknown or expired id gets a fresh cart under that key.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		cart, _, err = s.getOrCreate(ctx, uow, id)
		return err
	})
	return cart, err
}

// AddItem prices a selection against the deal's dated pricing, inserts a new
// line or replaces the existing (activity, deal, date) line, and recomputes
// the cart total by full resummation.
func (s *Service) AddItem(ctx context.Context, id uuid.UUID, p AddItemParams) (*domain.Cart, error) {
	if p.Adults < 0 || p.Children < 0 || p.Adults+p.Children == 0 {
		return nil, ErrInvalidPax
	}

	var cart *domain.Cart
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		catalog, err := uow.Catalog()
		if err != nil {
			return err
		}
		activity, err := catalog.GetActivity(ctx, p.ActivityID)
		if err != nil {
			return err
		}
		deal, err := catalog.GetDeal(ctx, p.DealID)
		if err != nil {
			return err
		}

		// Price in effect on or before the booking date.
		pricing, ok := deal.PricingOn(p.BookingDate)
		if !ok {
			return fmt.Errorf("%w: no pricing in effect on %s",
				domain.ErrInvalidDate, p.BookingDate.Format("2006-01-02"))
		}
		base := deal.Currency(s.dealBase)
		adultPrice, err := money.New(pricing.AdultPrice, base)
		if err != nil {
			return err
		}
		childPrice, err := money.New(pricing.ChildPrice, base)
		if err != nil {
			return err
		}

		cart, _, err = s.getOrCreate(ctx, uow, id)
		if err != nil {
			return err
		}

		item := domain.CartItem{
			ActivityID:   activity.ID,
			DealID:       deal.ID,
			ActivityName: activity.Name,
			DealName:     deal.Name,
			BookingDate:  p.BookingDate,
			Adults:       p.Adults,
			Children:     p.Children,
			AdultPrice:   adultPrice,
			ChildPrice:   childPrice,
		}
		if err := item.ComputeSubtotal(); err != nil {
			return err
		}

		if idx := cart.IndexOf(item.ActivityID, item.DealID, item.BookingDate); idx >= 0 {
			cart.Items[idx] = item
		} else {
			cart.Items = append(cart.Items, item)
		}
		return s.persist(ctx, uow, cart)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("cart item added", "cart_id", cart.ID, "items", len(cart.Items))
	return cart, nil
}

// UpdateItem changes the pax counts of an existing line.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, index, adults, children int) (*domain.Cart, error) {
	if adults < 0 || children < 0 || adults+children == 0 {
		return nil, ErrInvalidPax
	}

	var cart *domain.Cart
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		cart, err = s.load(ctx, uow, id)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(cart.Items) {
			return fmt.Errorf("%w: index %d", domain.ErrItemNotFound, index)
		}
		cart.Items[index].Adults = adults
		cart.Items[index].Children = children
		if err := cart.Items[index].ComputeSubtotal(); err != nil {
			return err
		}
		return s.persist(ctx, uow, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a line by index.
func (s *Service) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		cart, err = s.load(ctx, uow, id)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(cart.Items) {
			return fmt.Errorf("%w: index %d", domain.ErrItemNotFound, index)
		}
		cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
		return s.persist(ctx, uow, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart's items and zeroes its total. The cart document is
// kept; only an explicit clear of items, never a hard delete.
func (s *Service) Clear(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		cart, err = s.load(ctx, uow, id)
		if err != nil {
			return err
		}
		cart.ClearItems()
		return s.persist(ctx, uow, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// PurgeExpired deletes carts whose expiry passed. Run periodically from the
// server process.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	var purged int64
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		carts, err := uow.Carts()
		if err != nil {
			return err
		}
		purged, err = carts.DeleteExpired(ctx, s.now())
		return err
	})
	return purged, err
}

// load returns an existing, unexpired cart or domain.ErrCartNotFound.
func (s *Service) load(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*domain.Cart, error) {
	carts, err := uow.Carts()
	if err != nil {
		return nil, err
	}
	cart, err := carts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cart.Expired(s.now()) {
		return nil, domain.ErrCartNotFound
	}
	return cart, nil
}

// getOrCreate fetches the cart for id, creating a fresh one when the id is
// nil, unknown, or the stored cart has expired.
func (s *Service) getOrCreate(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*domain.Cart, bool, error) {
	carts, err := uow.Carts()
	if err != nil {
		return nil, false, err
	}
	if id != uuid.Nil {
		cart, err := carts.Get(ctx, id)
		switch {
		case err == nil:
			if !cart.Expired(s.now()) {
				return cart, false, nil
			}
			// Expired under the same key: reset in place.
			cart.ClearItems()
			cart.Touch(s.now(), s.ttl)
			if err := carts.Save(ctx, cart); err != nil {
				return nil, false, err
			}
			return cart, false, nil
		case errors.Is(err, domain.ErrCartNotFound):
			// fall through to create under the provided key
		default:
			return nil, false, err
		}
	} else {
		id = uuid.New()
	}

	cart := domain.NewCart(id, s.now(), s.ttl)
	if err := carts.Create(ctx, cart); err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

// persist resums the total, slides the expiry and saves. Every mutation goes
// through here so the total invariant holds after any operation.
func (s *Service) persist(ctx context.Context, uow repository.UnitOfWork, cart *domain.Cart) error {
	if err := cart.Resum(); err != nil {
		return err
	}
	cart.Touch(s.now(), s.ttl)
	carts, err := uow.Carts()
	if err != nil {
		return err
	}
	return carts.Save(ctx, cart)
}
