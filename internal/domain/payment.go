package domain

import "time"

type PaymentOrderStatus string

const (
	OrderCreated   PaymentOrderStatus = "created"
	OrderAttempted PaymentOrderStatus = "attempted"
	OrderPaid      PaymentOrderStatus = "paid"
	OrderFailed    PaymentOrderStatus = "failed"
	OrderRefunded  PaymentOrderStatus = "refunded"
)

// PaymentOrder tracks one provider-side order for a booking. At most one
// order per booking may be in {created, attempted} at a time.
type PaymentOrder struct {
	ID                int64              `json:"id"`
	BookingID         int64              `json:"booking_id"`
	ProviderOrderID   string             `json:"provider_order_id"`
	ProviderPaymentID string             `json:"provider_payment_id,omitempty"`
	Receipt           string             `json:"receipt"`
	Amount            float64            `json:"amount"`
	Currency          string             `json:"currency"`
	Status            PaymentOrderStatus `json:"status"`
	PaymentMethod     string             `json:"payment_method,omitempty"`
	FailureReason     string             `json:"failure_reason,omitempty"`
	RefundID          string             `json:"refund_id,omitempty"`
	RefundAmount      *float64           `json:"refund_amount,omitempty"`
	PaidAt            *time.Time         `json:"paid_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (s PaymentOrderStatus) Open() bool {
	return s == OrderCreated || s == OrderAttempted
}
