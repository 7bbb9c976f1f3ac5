// Package notify delivers customer-facing booking notifications. Email is an
// external collaborator; this implementation records the event so a delivery
// backend can be swapped in without touching the payment flow.
package notify

import (
	"context"
	"log/slog"

	"github.com/tripmena/backend/pkg/domain"
)

// LogNotifier writes booking confirmations to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// BookingConfirmed records the confirmation that would be mailed to the
// customer.
func (n *LogNotifier) BookingConfirmed(_ context.Context, b *domain.Booking) error {
	n.logger.Info("booking confirmation",
		"booking_reference", b.Reference,
		"email", b.Email,
		"total", b.TotalPrice.String(),
		"items", len(b.Items),
	)
	return nil
}
