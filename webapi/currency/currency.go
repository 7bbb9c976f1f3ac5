// Package currency exposes the supported-currency listing.
package currency

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/tripmena/backend/pkg/exchange"
	"github.com/tripmena/backend/webapi/common"
)

// Routes registers the currency routes.
func Routes(app *fiber.App, rates *exchange.Cache) {
	app.Get("/api/currencies", ListCurrencies(rates))
}

// ListCurrencies returns a Fiber handler that lists the currencies the
// current rate table can convert to, with the base marked.
func ListCurrencies(rates *exchange.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table := rates.Rates(c.Context())
		codes := make([]string, 0, len(table))
		for code := range table {
			codes = append(codes, string(code))
		}
		sort.Strings(codes)
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched", fiber.Map{
			"base":       string(rates.Base()),
			"currencies": codes,
		})
	}
}
