package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/domain/money"
)

// Cart is the cart document row. Items live in one JSONB column so a cart is
// read and written atomically as a single row.
type Cart struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Items         json.RawMessage `gorm:"type:jsonb;not null;default:'[]'"`
	TotalAmount   float64         `gorm:"type:numeric(12,2);not null;default:0"`
	TotalCurrency string          `gorm:"type:varchar(3)"`
	ExpiresAt     time.Time       `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the Cart model.
func (Cart) TableName() string { return "carts" }

// Booking is the booking row. The item snapshot is JSONB; the reference
// carries a unique index so a generator collision fails loudly.
type Booking struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID        uuid.UUID       `gorm:"type:uuid;index"`
	Reference     string          `gorm:"type:varchar(32);uniqueIndex;not null"`
	Items         json.RawMessage `gorm:"type:jsonb;not null;default:'[]'"`
	TotalAmount   float64         `gorm:"type:numeric(12,2);not null;default:0"`
	TotalCurrency string          `gorm:"type:varchar(3)"`
	Email         string          `gorm:"type:varchar(255);not null"`
	PhoneNumber   string          `gorm:"type:varchar(32);not null"`
	Status        string          `gorm:"type:varchar(16);not null;index"`
	SessionID     string          `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the Booking model.
func (Booking) TableName() string { return "bookings" }

// Activity is the catalog activity row.
type Activity struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Description   string
	City          string  `gorm:"type:varchar(128)"`
	OriginalPrice float64 `gorm:"type:numeric(12,2)"`
	DiscountPrice float64 `gorm:"type:numeric(12,2)"`
	CostPrice     float64 `gorm:"type:numeric(12,2)"`
	BaseCurrency  string  `gorm:"type:varchar(3)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the Activity model.
func (Activity) TableName() string { return "activities" }

// Deal is the deal row; dated pricing entries are a JSONB array.
type Deal struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ActivityID   uuid.UUID       `gorm:"type:uuid;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Description  string
	Pricing      json.RawMessage `gorm:"type:jsonb;not null;default:'[]'"`
	BaseCurrency string          `gorm:"type:varchar(3)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Deal model.
func (Deal) TableName() string { return "deals" }

// HolidayPackage is the package row; the itinerary with its embedded
// activities is one JSONB document.
type HolidayPackage struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Description   string
	Nights        int
	OriginalPrice float64         `gorm:"type:numeric(12,2)"`
	DiscountPrice float64         `gorm:"type:numeric(12,2)"`
	BaseCurrency  string          `gorm:"type:varchar(3)"`
	Itinerary     json.RawMessage `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the HolidayPackage model.
func (HolidayPackage) TableName() string { return "holiday_packages" }

// ComboOffer is the combo row; sub-activities are a JSONB array.
type ComboOffer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Description   string
	Activities    json.RawMessage `gorm:"type:jsonb;not null;default:'[]'"`
	ComboDiscount float64         `gorm:"type:numeric(12,2)"`
	DiscountType  string          `gorm:"type:varchar(16)"`
	BaseCurrency  string          `gorm:"type:varchar(3)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the ComboOffer model.
func (ComboOffer) TableName() string { return "combo_offers" }

// Models lists every GORM model for migration.
func Models() []any {
	return []any{
		&Cart{}, &Booking{},
		&Activity{}, &Deal{}, &HolidayPackage{}, &ComboOffer{},
	}
}

// totalToMoney rebuilds a Money from the split amount/currency columns. An
// empty currency column means an empty cart total.
func totalToMoney(amount float64, code string) (money.Money, error) {
	if code == "" {
		return money.Zero(""), nil
	}
	return money.New(amount, currency.Code(code))
}

func mapCartToModel(cart *domain.Cart) (*Cart, error) {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return nil, err
	}
	return &Cart{
		ID:            cart.ID,
		Items:         items,
		TotalAmount:   cart.TotalAmount.Float64(),
		TotalCurrency: cart.TotalAmount.Currency().String(),
		ExpiresAt:     cart.ExpiresAt,
		CreatedAt:     cart.CreatedAt,
		UpdatedAt:     cart.UpdatedAt,
	}, nil
}

func mapModelToCart(m *Cart) (*domain.Cart, error) {
	var items []domain.CartItem
	if len(m.Items) > 0 {
		if err := json.Unmarshal(m.Items, &items); err != nil {
			return nil, err
		}
	}
	total, err := totalToMoney(m.TotalAmount, m.TotalCurrency)
	if err != nil {
		return nil, err
	}
	return &domain.Cart{
		ID:          m.ID,
		Items:       items,
		TotalAmount: total,
		ExpiresAt:   m.ExpiresAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func mapBookingToModel(b *domain.Booking) (*Booking, error) {
	items, err := json.Marshal(b.Items)
	if err != nil {
		return nil, err
	}
	return &Booking{
		ID:            b.ID,
		CartID:        b.CartID,
		Reference:     b.Reference,
		Items:         items,
		TotalAmount:   b.TotalPrice.Float64(),
		TotalCurrency: b.TotalPrice.Currency().String(),
		Email:         b.Email,
		PhoneNumber:   b.PhoneNumber,
		Status:        string(b.Status),
		SessionID:     b.SessionID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}, nil
}

func mapModelToBooking(m *Booking) (*domain.Booking, error) {
	var items []domain.BookingItem
	if len(m.Items) > 0 {
		if err := json.Unmarshal(m.Items, &items); err != nil {
			return nil, err
		}
	}
	total, err := totalToMoney(m.TotalAmount, m.TotalCurrency)
	if err != nil {
		return nil, err
	}
	return &domain.Booking{
		ID:          m.ID,
		CartID:      m.CartID,
		Reference:   m.Reference,
		Items:       items,
		TotalPrice:  total,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Status:      domain.BookingStatus(m.Status),
		SessionID:   m.SessionID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func mapModelToActivity(m *Activity) domain.Activity {
	return domain.Activity{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		City:          m.City,
		OriginalPrice: m.OriginalPrice,
		DiscountPrice: m.DiscountPrice,
		CostPrice:     m.CostPrice,
		BaseCurrency:  currency.Code(m.BaseCurrency),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func mapModelToDeal(m *Deal) (domain.Deal, error) {
	var pricing []domain.DealPricing
	if len(m.Pricing) > 0 {
		if err := json.Unmarshal(m.Pricing, &pricing); err != nil {
			return domain.Deal{}, err
		}
	}
	return domain.Deal{
		ID:           m.ID,
		ActivityID:   m.ActivityID,
		Name:         m.Name,
		Description:  m.Description,
		Pricing:      pricing,
		BaseCurrency: currency.Code(m.BaseCurrency),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func mapModelToPackage(m *HolidayPackage) (*domain.HolidayPackage, error) {
	var itinerary []domain.PackageDay
	if len(m.Itinerary) > 0 {
		if err := json.Unmarshal(m.Itinerary, &itinerary); err != nil {
			return nil, err
		}
	}
	return &domain.HolidayPackage{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Nights:        m.Nights,
		OriginalPrice: m.OriginalPrice,
		DiscountPrice: m.DiscountPrice,
		BaseCurrency:  currency.Code(m.BaseCurrency),
		Itinerary:     itinerary,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func mapModelToCombo(m *ComboOffer) (*domain.ComboOffer, error) {
	var activities []domain.ComboActivity
	if len(m.Activities) > 0 {
		if err := json.Unmarshal(m.Activities, &activities); err != nil {
			return nil, err
		}
	}
	return &domain.ComboOffer{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Activities:    activities,
		ComboDiscount: m.ComboDiscount,
		DiscountType:  domain.DiscountType(m.DiscountType),
		BaseCurrency:  currency.Code(m.BaseCurrency),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}
