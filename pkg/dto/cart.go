package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/domain/money"
)

// CartItemRead is one cart line in a response, prices converted to the
// requested display currency.
type CartItemRead struct {
	ActivityID   uuid.UUID   `json:"activityId"`
	DealID       uuid.UUID   `json:"dealId"`
	ActivityName string      `json:"activityName"`
	DealName     string      `json:"dealName"`
	BookingDate  string      `json:"bookingDate"`
	Adults       int         `json:"adults"`
	Children     int         `json:"children"`
	AdultPrice   money.Money `json:"adultPrice"`
	ChildPrice   money.Money `json:"childPrice"`
	Subtotal     money.Money `json:"subtotal"`
}

// CartRead is the cart response projection.
type CartRead struct {
	ID          uuid.UUID      `json:"cartId"`
	Items       []CartItemRead `json:"items"`
	TotalAmount money.Money    `json:"totalAmount"`
	ExpiresAt   time.Time      `json:"expiresAt"`
}

// BookingRead is the booking response projection.
type BookingRead struct {
	Reference   string         `json:"bookingReference"`
	Status      string         `json:"status"`
	Items       []CartItemRead `json:"items"`
	TotalPrice  money.Money    `json:"totalPrice"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phoneNumber"`
	CreatedAt   time.Time      `json:"createdAt"`
}
