package domain

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ServiceType classifies what a coupon applies to. Room bookings with
// transport count as "airport" runs, matching how coupons are issued.
type ServiceType string

const (
	ServiceTypeAirport   ServiceType = "airport"
	ServiceTypeYoga      ServiceType = "yoga"
	ServiceTypeRental    ServiceType = "rental"
	ServiceTypeAdventure ServiceType = "adventure"
)

type Coupon struct {
	ID                 int64         `json:"id"`
	Code               string        `json:"code" validate:"required"`
	Description        string        `json:"description"`
	DiscountType       DiscountType  `json:"discount_type" validate:"required"`
	DiscountValue      float64       `json:"discount_value" validate:"gte=0"`
	ApplicableServices []ServiceType `json:"applicable_services"`
	MinOrderValue      float64       `json:"min_order_value"`
	MaxDiscount        *float64      `json:"max_discount,omitempty"`
	ValidFrom          time.Time     `json:"valid_from"`
	ValidUntil         time.Time     `json:"valid_until"`
	UsageLimit         *int          `json:"usage_limit,omitempty"`
	CurrentUsageCount  int           `json:"current_usage_count"`
	IsActive           bool          `json:"is_active"`
	CreatedBy          int64         `json:"created_by"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// IsCurrentlyValid reports whether the coupon can be applied right now:
// active, inside its validity window, and under its usage cap.
func (c *Coupon) IsCurrentlyValid(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	if c.UsageLimit != nil && c.CurrentUsageCount >= *c.UsageLimit {
		return false
	}
	return true
}

// IsApplicableToService reports whether the coupon covers the given service
// type. A coupon with no listed services applies everywhere.
func (c *Coupon) IsApplicableToService(t ServiceType) bool {
	if len(c.ApplicableServices) == 0 {
		return true
	}
	for _, s := range c.ApplicableServices {
		if s == t {
			return true
		}
	}
	return false
}

// CalculateDiscount returns the discount for an order value: zero below the
// minimum order value, percentage or fixed, capped at MaxDiscount and never
// more than the order itself.
func (c *Coupon) CalculateDiscount(orderValue float64) float64 {
	if c.MinOrderValue > 0 && orderValue < c.MinOrderValue {
		return 0
	}

	var discount float64
	if c.DiscountType == DiscountPercentage {
		discount = orderValue * c.DiscountValue / 100
	} else {
		discount = c.DiscountValue
	}

	if c.MaxDiscount != nil && discount > *c.MaxDiscount {
		discount = *c.MaxDiscount
	}
	if discount > orderValue {
		discount = orderValue
	}
	return discount
}

// CouponUsage is the at-most-once record: for a given coupon and identity
// (registered user ID, or phone number for guests) only one row may exist.
type CouponUsage struct {
	ID             int64       `json:"id"`
	CouponID       int64       `json:"coupon_id"`
	UserID         *int64      `json:"user_id,omitempty"`
	PhoneNumber    string      `json:"phone_number,omitempty"`
	Email          string      `json:"email,omitempty"`
	BookingID      int64       `json:"booking_id"`
	DiscountAmount float64     `json:"discount_amount"`
	OrderValue     float64     `json:"order_value"`
	ServiceType    ServiceType `json:"service_type"`
	UsedAt         time.Time   `json:"used_at"`
}
