// Package dto holds the response projections emitted by the normalizers and
// read endpoints. Shapes are enumerated explicitly per entity type; storage
// metadata never leaks into them.
package dto

import (
	"github.com/google/uuid"
)

// ActivityRead is a normalized activity projection. All money fields are in
// Currency, including CostPrice which internal reporting paths consume.
type ActivityRead struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	City          string    `json:"city,omitempty"`
	OriginalPrice float64   `json:"originalPrice"`
	DiscountPrice float64   `json:"discountPrice"`
	CostPrice     float64   `json:"costPrice"`
	Currency      string    `json:"currency"`
}

// DealPricingRead is one dated pricing entry, converted independently of its
// siblings.
type DealPricingRead struct {
	Date       string  `json:"date"`
	AdultPrice float64 `json:"adultPrice"`
	ChildPrice float64 `json:"childPrice"`
}

// DealRead is a normalized deal projection with its full dated pricing list.
// DisplayPrice is the earliest entry dated today or later; it is null when
// every entry is in the past.
type DealRead struct {
	ID           uuid.UUID         `json:"id"`
	ActivityID   uuid.UUID         `json:"activityId"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Pricing      []DealPricingRead `json:"pricing"`
	DisplayPrice *DealPricingRead  `json:"displayPrice"`
	Currency     string            `json:"currency"`
}

// PackageDayRead is one itinerary day with its normalized activities.
type PackageDayRead struct {
	Day        int            `json:"day"`
	Title      string         `json:"title,omitempty"`
	Activities []ActivityRead `json:"activities"`
}

// PackageRead is a normalized holiday-package projection.
type PackageRead struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Nights        int              `json:"nights"`
	OriginalPrice float64          `json:"originalPrice"`
	DiscountPrice float64          `json:"discountPrice"`
	Itinerary     []PackageDayRead `json:"itinerary"`
	Currency      string           `json:"currency"`
}

// ComboActivityRead is a normalized combo sub-activity.
type ComboActivityRead struct {
	ActivityID  uuid.UUID `json:"activityId"`
	Name        string    `json:"name"`
	Discount    float64   `json:"discount"`
	LowestPrice float64   `json:"lowestPrice"`
}

// ComboRead is a normalized combo-offer projection. ComboDiscount is money
// only when DiscountType is "flat"; for "percentage" it is a ratio and is
// returned unconverted.
type ComboRead struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	Activities    []ComboActivityRead `json:"activities"`
	ComboDiscount float64             `json:"comboDiscount"`
	DiscountType  string              `json:"discountType"`
	Currency      string              `json:"currency"`
}
