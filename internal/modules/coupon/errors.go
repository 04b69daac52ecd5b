package coupon

import "errors"

var (
	ErrNotFound      = errors.New("coupon not found")
	ErrInactive      = errors.New("coupon is not active")
	ErrNotYetValid   = errors.New("coupon is not valid yet")
	ErrExpired       = errors.New("coupon has expired")
	ErrLimitReached  = errors.New("coupon usage limit reached")
	ErrAlreadyUsed   = errors.New("coupon has already been used")
	ErrNotApplicable = errors.New("coupon does not apply to this booking type")
	ErrMinOrderValue = errors.New("order value is below the coupon minimum")
	ErrCodeTaken     = errors.New("coupon code already exists")
	ErrIdentity      = errors.New("a user account or phone number is required to apply a coupon")
)
