// Package cart exposes the cart, checkout and payment-callback routes.
package cart

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/config"
	"github.com/tripmena/backend/pkg/currency"
	cartsvc "github.com/tripmena/backend/pkg/service/cart"
	checkoutsvc "github.com/tripmena/backend/pkg/service/checkout"
	paymentsvc "github.com/tripmena/backend/pkg/service/payment"
	"github.com/tripmena/backend/pkg/service/pricing"
	"github.com/tripmena/backend/webapi/common"
)

const dateLayout = "2006-01-02"

// Routes registers the cart and checkout routes.
func Routes(
	app *fiber.App,
	carts *cartsvc.Service,
	orchestrator *checkoutsvc.Orchestrator,
	payments *paymentsvc.Handler,
	normalizer *pricing.Normalizer,
	cfg *config.Checkout,
	logger *slog.Logger,
) {
	// Callback routes must precede the :cartId wildcard.
	app.Get("/cart/complete", CompletePayment(payments, cfg, logger))
	app.Get("/cart/cancel", CancelPayment(payments, cfg, logger))

	app.Get("/cart/:cartId?", GetCart(carts, normalizer))
	app.Post("/cart/cart-item/:cartId?", AddCartItem(carts, normalizer))
	app.Put("/cart/:cartId/items/:itemIndex", UpdateCartItem(carts, normalizer))
	app.Delete("/cart/:cartId/items/:itemIndex", RemoveCartItem(carts, normalizer))
	app.Delete("/cart/:cartId", ClearCart(carts, normalizer))
	app.Post("/cart/:cartId/checkout", Checkout(orchestrator))
}

// addItemRequest is the add-to-cart payload.
type addItemRequest struct {
	ActivityID  uuid.UUID `json:"activityId"`
	DealID      uuid.UUID `json:"dealId"`
	BookingDate string    `json:"bookingDate"`
	Adults      int       `json:"adults"`
	Children    int       `json:"children"`
}

// updateItemRequest changes pax counts on an existing line.
type updateItemRequest struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// checkoutRequest is the checkout payload.
type checkoutRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// cartID parses the optional :cartId parameter. Absent means "allocate".
func cartID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Params("cartId")
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

// displayCurrency reads the optional ?currency= query parameter.
func displayCurrency(c *fiber.Ctx) currency.Code {
	return currency.Code(c.Query("currency"))
}

// GetCart returns a Fiber handler that fetches (or lazily creates) a cart.
func GetCart(carts *cartsvc.Service, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := cartID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid cart id", err.Error())
		}
		cart, err := carts.Get(c.Context(), id)
		if err != nil {
			return common.ProblemJSON(c, "Failed to fetch cart", err)
		}
		read, err := normalizer.Cart(c.Context(), cart, displayCurrency(c))
		if err != nil {
			return common.ProblemJSON(c, "Failed to normalize cart", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cart fetched", read)
	}
}

// AddCartItem returns a Fiber handler that adds (or replaces) a cart line.
func AddCartItem(carts *cartsvc.Service, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := cartID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid cart id", err.Error())
		}
		var req addItemRequest
		if err := c.BodyParser(&req); err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		}
		bookingDate, err := time.Parse(dateLayout, req.BookingDate)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid booking date",
				fmt.Sprintf("bookingDate must be %s", dateLayout))
		}

		cart, err := carts.AddItem(c.Context(), id, cartsvc.AddItemParams{
			ActivityID:  req.ActivityID,
			DealID:      req.DealID,
			BookingDate: bookingDate,
			Adults:      req.Adults,
			Children:    req.Children,
		})
		if err != nil {
			return common.ProblemJSON(c, "Failed to add cart item", err)
		}
		read, err := normalizer.Cart(c.Context(), cart, displayCurrency(c))
		if err != nil {
			return common.ProblemJSON(c, "Failed to normalize cart", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cart item added", read)
	}
}

// UpdateCartItem returns a Fiber handler that changes pax counts on a line.
func UpdateCartItem(carts *cartsvc.Service, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("cartId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid cart id", err.Error())
		}
		index, err := c.ParamsInt("itemIndex")
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid item index", err.Error())
		}
		var req updateItemRequest
		if err := c.BodyParser(&req); err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		}

		cart, err := carts.UpdateItem(c.Context(), id, index, req.Adults, req.Children)
		if err != nil {
			return common.ProblemJSON(c, "Failed to update cart item", err)
		}
		read, err := normalizer.Cart(c.Context(), cart, displayCurrency(c))
		if err != nil {
			return common.ProblemJSON(c, "Failed to normalize cart", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cart item updated", read)
	}
}

// RemoveCartItem returns a Fiber handler that drops a line by index.
func RemoveCartItem(carts *cartsvc.Service, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("cartId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid cart id", err.Error())
		}
		index, err := c.ParamsInt("itemIndex")
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid item index", err.Error())
		}

		cart, err := carts.RemoveItem(c.Context(), id, index)
		if err != nil {
			return common.ProblemJSON(c, "Failed to remove cart item", err)
		}
		read, err := normalizer.Cart(c.Context(), cart, displayCurrency(c))
		if err != nil {
			return common.ProblemJSON(c, "Failed to normalize cart", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cart item removed", read)
	}
}

// ClearCart returns a Fiber handler that empties a cart.
func ClearCart(carts *cartsvc.Service, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("cartId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid cart id", err.Error())
		}
		cart, err := carts.Clear(c.Context(), id)
		if err != nil {
			return common.ProblemJSON(c, "Failed to clear cart", err)
		}
		read, err := normalizer.Cart(c.Context(), cart, "")
		if err != nil {
			return common.ProblemJSON(c, "Failed to normalize cart", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cart cleared", read)
	}
}

// Checkout returns a Fiber handler that starts checkout for a cart.
func Checkout(orchestrator *checkoutsvc.Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("cartId"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid cart id", err.Error())
		}
		var req checkoutRequest
		if err := c.BodyParser(&req); err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		}

		result, err := orchestrator.Checkout(c.Context(), id, checkoutsvc.ContactInfo{
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			return common.ProblemJSON(c, "Checkout failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Checkout session created", fiber.Map{
			"bookingReference": result.BookingReference,
			"sessionId":        result.SessionID,
			"redirectUrl":      result.RedirectURL,
		})
	}
}

// CompletePayment returns a Fiber handler for the provider success callback.
// It verifies the session is paid, finalizes the booking and redirects the
// customer to the success page.
func CompletePayment(payments *paymentsvc.Handler, cfg *config.Checkout, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Query("session_id")
		cartIDRaw := c.Query("cart_id")
		id, err := uuid.Parse(cartIDRaw)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid cart id", cartIDRaw)
		}
		if sessionID == "" {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Missing session id", nil)
		}

		booking, err := payments.Complete(c.Context(), sessionID, id)
		if err != nil {
			return common.ProblemJSON(c, "Payment completion failed", err)
		}
		redirect := cfg.SuccessRedirect
		if booking != nil {
			redirect = fmt.Sprintf("%s?reference=%s", cfg.SuccessRedirect, booking.Reference)
		}
		logger.Info("payment complete callback handled", "cart_id", id, "redirect", redirect)
		return c.Redirect(redirect, fiber.StatusSeeOther)
	}
}

// CancelPayment returns a Fiber handler for the provider cancel callback. The
// cart is left populated so the customer can retry.
func CancelPayment(payments *paymentsvc.Handler, cfg *config.Checkout, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Query("cart_id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid cart id", c.Query("cart_id"))
		}
		if err := payments.Cancel(c.Context(), id, c.Query("session_id")); err != nil {
			return common.ProblemJSON(c, "Payment cancellation failed", err)
		}
		logger.Info("payment cancel callback handled", "cart_id", id)
		return c.Redirect(cfg.CancelRedirect, fiber.StatusSeeOther)
	}
}
