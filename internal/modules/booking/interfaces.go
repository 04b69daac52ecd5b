package booking

import (
	"context"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

// CouponLedger is the slice of the coupon module this service needs: check a
// code against validity, applicability and the anti-reuse rule, and return
// the discount for an order value.
type CouponLedger interface {
	Validate(ctx context.Context, code string, orderValue float64, serviceType domain.ServiceType, userID *int64, phone string) (*domain.Coupon, float64, error)
}

// Notifier receives finalized bookings. Implementations must not block and
// their failures never affect the booking.
type Notifier interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
	BookingCancelled(ctx context.Context, b *domain.Booking)
}
