package coupon

import (
	"time"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

type ValidateRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderValue  float64 `json:"order_value" binding:"required,gt=0"`
	ServiceType string  `json:"service_type"`
	PhoneNumber string  `json:"phone_number"`
}

type ValidateResponse struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	Discount      float64 `json:"discount"`
	FinalAmount   float64 `json:"final_amount"`
}

type CreateCouponRequest struct {
	Code               string    `json:"code" binding:"required"`
	Description        string    `json:"description"`
	DiscountType       string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue      float64   `json:"discount_value" binding:"required,gt=0"`
	ApplicableServices []string  `json:"applicable_services"`
	MinOrderValue      float64   `json:"min_order_value"`
	MaxDiscount        *float64  `json:"max_discount"`
	ValidFrom          time.Time `json:"valid_from" binding:"required"`
	ValidUntil         time.Time `json:"valid_until" binding:"required"`
	UsageLimit         *int      `json:"usage_limit"`
	IsActive           *bool     `json:"is_active"`
}

func (r *CreateCouponRequest) toCoupon(createdBy int64) *domain.Coupon {
	c := &domain.Coupon{
		Code:          r.Code,
		Description:   r.Description,
		DiscountType:  domain.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		MinOrderValue: r.MinOrderValue,
		MaxDiscount:   r.MaxDiscount,
		ValidFrom:     r.ValidFrom,
		ValidUntil:    r.ValidUntil,
		UsageLimit:    r.UsageLimit,
		IsActive:      true,
		CreatedBy:     createdBy,
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	for _, s := range r.ApplicableServices {
		c.ApplicableServices = append(c.ApplicableServices, domain.ServiceType(s))
	}
	return c
}

type UpdateCouponRequest struct {
	Description        *string    `json:"description"`
	DiscountValue      *float64   `json:"discount_value"`
	ApplicableServices *[]string  `json:"applicable_services"`
	MinOrderValue      *float64   `json:"min_order_value"`
	MaxDiscount        *float64   `json:"max_discount"`
	ValidFrom          *time.Time `json:"valid_from"`
	ValidUntil         *time.Time `json:"valid_until"`
	UsageLimit         *int       `json:"usage_limit"`
	IsActive           *bool      `json:"is_active"`
}

type ListCouponsQuery struct {
	IsActive    *bool  `form:"is_active"`
	ServiceType string `form:"service_type"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

type ListCouponsResponse struct {
	Coupons []domain.Coupon `json:"coupons"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}
