package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/domain/money"
)

// BookingStatus is the lifecycle state of a booking. Transitions are
// monotonic and one-directional: PENDING -> COMPLETED or PENDING -> REJECTED.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingRejected  BookingStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingRejected
}

// CanTransitionTo reports whether the transition s -> to is valid.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	return s == BookingPending && to.IsTerminal()
}

// BookingItem is an immutable snapshot of a cart line captured at checkout.
// Names are denormalized so later catalog edits never alter booking history.
type BookingItem struct {
	ActivityID   uuid.UUID   `json:"activityId"`
	DealID       uuid.UUID   `json:"dealId"`
	ActivityName string      `json:"activityName"`
	DealName     string      `json:"dealName"`
	BookingDate  time.Time   `json:"bookingDate"`
	Adults       int         `json:"adults"`
	Children     int         `json:"children"`
	AdultPrice   money.Money `json:"adultPrice"`
	ChildPrice   money.Money `json:"childPrice"`
	Subtotal     money.Money `json:"subtotal"`
}

// Booking references a cart snapshot plus customer contact fields. It is
// created PENDING at checkout start and finalized by the payment completion
// handler.
type Booking struct {
	ID          uuid.UUID
	CartID      uuid.UUID
	Reference   string
	Items       []BookingItem
	TotalPrice  money.Money
	Email       string
	PhoneNumber string
	Status      BookingStatus
	SessionID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SnapshotCart copies every cart line into an immutable booking-items array.
func SnapshotCart(cart *Cart) []BookingItem {
	items := make([]BookingItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, BookingItem{
			ActivityID:   it.ActivityID,
			DealID:       it.DealID,
			ActivityName: it.ActivityName,
			DealName:     it.DealName,
			BookingDate:  it.BookingDate,
			Adults:       it.Adults,
			Children:     it.Children,
			AdultPrice:   it.AdultPrice,
			ChildPrice:   it.ChildPrice,
			Subtotal:     it.Subtotal,
		})
	}
	return items
}
