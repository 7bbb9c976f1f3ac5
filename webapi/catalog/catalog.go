// Package catalog exposes the priced catalog read routes. Every route accepts
// an optional ?currency= query parameter selecting the display currency;
// omitted means "as stored".
package catalog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/dto"
	"github.com/tripmena/backend/pkg/repository"
	"github.com/tripmena/backend/pkg/service/pricing"
	"github.com/tripmena/backend/webapi/common"
)

// Routes registers the catalog read routes.
func Routes(app *fiber.App, uow repository.UnitOfWork, normalizer *pricing.Normalizer) {
	api := app.Group("/api")
	api.Get("/activities", ListActivities(uow, normalizer))
	api.Get("/activities/:id", GetActivity(uow, normalizer))
	api.Get("/activities/:id/deals", ListDeals(uow, normalizer))
	api.Get("/packages/:id", GetPackage(uow, normalizer))
	api.Get("/combos/:id", GetCombo(uow, normalizer))
}

func displayCurrency(c *fiber.Ctx) currency.Code {
	return currency.Code(c.Query("currency"))
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// ListActivities returns a Fiber handler that lists all activities with
// prices normalized to the display currency.
func ListActivities(uow repository.UnitOfWork, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reads []*dto.ActivityRead
		err := uow.Do(c.Context(), func(uow repository.UnitOfWork) error {
			catalog, err := uow.Catalog()
			if err != nil {
				return err
			}
			activities, err := catalog.ListActivities(c.Context())
			if err != nil {
				return err
			}
			reads = make([]*dto.ActivityRead, 0, len(activities))
			for _, a := range activities {
				read, err := normalizer.Activity(c.Context(), a, displayCurrency(c))
				if err != nil {
					return err
				}
				reads = append(reads, read)
			}
			return nil
		})
		if err != nil {
			return common.ProblemJSON(c, "Failed to list activities", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Activities fetched", reads)
	}
}

// GetActivity returns a Fiber handler that fetches one normalized activity.
func GetActivity(uow repository.UnitOfWork, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid activity id", err.Error())
		}
		var read *dto.ActivityRead
		err = uow.Do(c.Context(), func(uow repository.UnitOfWork) error {
			catalog, err := uow.Catalog()
			if err != nil {
				return err
			}
			activity, err := catalog.GetActivity(c.Context(), id)
			if err != nil {
				return err
			}
			read, err = normalizer.Activity(c.Context(), *activity, displayCurrency(c))
			return err
		})
		if err != nil {
			return common.ProblemJSON(c, "Failed to fetch activity", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Activity fetched", read)
	}
}

// ListDeals returns a Fiber handler that lists an activity's deals with their
// dated pricing normalized.
func ListDeals(uow repository.UnitOfWork, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid activity id", err.Error())
		}
		var reads []*dto.DealRead
		err = uow.Do(c.Context(), func(uow repository.UnitOfWork) error {
			catalog, err := uow.Catalog()
			if err != nil {
				return err
			}
			if _, err := catalog.GetActivity(c.Context(), id); err != nil {
				return err
			}
			deals, err := catalog.ListDealsByActivity(c.Context(), id)
			if err != nil {
				return err
			}
			reads = make([]*dto.DealRead, 0, len(deals))
			for _, d := range deals {
				read, err := normalizer.Deal(c.Context(), d, displayCurrency(c))
				if err != nil {
					return err
				}
				reads = append(reads, read)
			}
			return nil
		})
		if err != nil {
			return common.ProblemJSON(c, "Failed to list deals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deals fetched", reads)
	}
}

// GetPackage returns a Fiber handler that fetches one normalized holiday
// package, nested activities included.
func GetPackage(uow repository.UnitOfWork, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid package id", err.Error())
		}
		var read *dto.PackageRead
		err = uow.Do(c.Context(), func(uow repository.UnitOfWork) error {
			catalog, err := uow.Catalog()
			if err != nil {
				return err
			}
			pkg, err := catalog.GetHolidayPackage(c.Context(), id)
			if err != nil {
				return err
			}
			read, err = normalizer.HolidayPackage(c.Context(), *pkg, displayCurrency(c))
			return err
		})
		if err != nil {
			return common.ProblemJSON(c, "Failed to fetch package", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Package fetched", read)
	}
}

// GetCombo returns a Fiber handler that fetches one normalized combo offer.
func GetCombo(uow repository.UnitOfWork, normalizer *pricing.Normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid combo id", err.Error())
		}
		var read *dto.ComboRead
		err = uow.Do(c.Context(), func(uow repository.UnitOfWork) error {
			catalog, err := uow.Catalog()
			if err != nil {
				return err
			}
			combo, err := catalog.GetComboOffer(c.Context(), id)
			if err != nil {
				return err
			}
			read, err = normalizer.ComboOffer(c.Context(), *combo, displayCurrency(c))
			return err
		})
		if err != nil {
			return common.ProblemJSON(c, "Failed to fetch combo", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Combo fetched", read)
	}
}
