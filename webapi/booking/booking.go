// Package booking exposes the booking read routes.
package booking

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/dto"
	paymentsvc "github.com/tripmena/backend/pkg/service/payment"
	"github.com/tripmena/backend/webapi/common"
)

const dateLayout = "2006-01-02"

// Routes registers the booking routes.
func Routes(app *fiber.App, payments *paymentsvc.Handler, logger *slog.Logger) {
	app.Get("/api/bookings/:reference", GetBooking(payments, logger))
}

// GetBooking returns a Fiber handler that looks a booking up by its
// human-readable reference.
func GetBooking(payments *paymentsvc.Handler, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reference := c.Params("reference")
		booking, err := payments.Lookup(c.Context(), reference)
		if err != nil {
			return common.ProblemJSON(c, "Failed to fetch booking", err)
		}
		logger.Debug("booking fetched", "booking_reference", reference)
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Booking fetched", mapBooking(booking))
	}
}

func mapBooking(b *domain.Booking) *dto.BookingRead {
	items := make([]dto.CartItemRead, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.CartItemRead{
			ActivityID:   it.ActivityID,
			DealID:       it.DealID,
			ActivityName: it.ActivityName,
			DealName:     it.DealName,
			BookingDate:  it.BookingDate.Format(dateLayout),
			Adults:       it.Adults,
			Children:     it.Children,
			AdultPrice:   it.AdultPrice,
			ChildPrice:   it.ChildPrice,
			Subtotal:     it.Subtotal,
		})
	}
	return &dto.BookingRead{
		Reference:   b.Reference,
		Status:      string(b.Status),
		Items:       items,
		TotalPrice:  b.TotalPrice,
		Email:       b.Email,
		PhoneNumber: b.PhoneNumber,
		CreatedAt:   b.CreatedAt,
	}
}
