package payment

import (
	"context"

	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

// CouponRecorder writes the redemption record for a paid booking inside the
// confirmation transaction.
type CouponRecorder interface {
	RecordUsage(ctx context.Context, tx *repository.Store, u *domain.CouponUsage) error
}

// Notifier receives bookings whose payment state changed. Implementations
// must not block and their failures never affect the payment.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *domain.Booking)
	PaymentFailed(ctx context.Context, b *domain.Booking)
}
