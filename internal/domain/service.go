package domain

import "time"

type ServiceCategory string

const (
	ServiceAddon     ServiceCategory = "addon"
	ServiceTransport ServiceCategory = "transport"
	ServiceFood      ServiceCategory = "food"
	ServiceYoga      ServiceCategory = "yoga"
	ServiceAdventure ServiceCategory = "adventure"
)

type PriceUnit string

const (
	PerPerson  PriceUnit = "per_person"
	PerDay     PriceUnit = "per_day"
	PerSession PriceUnit = "per_session"
	FlatRate   PriceUnit = "flat_rate"
)

type AgeRestriction struct {
	MinAge *int `json:"min_age,omitempty"`
	MaxAge *int `json:"max_age,omitempty"`
}

type Service struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name" validate:"required"`
	Category       ServiceCategory `json:"category" validate:"required"`
	Subcategory    string          `json:"subcategory,omitempty"`
	Price          float64         `json:"price" validate:"gte=0"`
	PriceUnit      PriceUnit       `json:"price_unit" validate:"required"`
	Description    string          `json:"description,omitempty"`
	AgeRestriction *AgeRestriction `json:"age_restriction,omitempty"`
	AvailableSlots *int            `json:"available_slots,omitempty"` // nil means unlimited
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
