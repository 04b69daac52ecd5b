package payment

import "github.com/farhanak624/kshetra-backend/internal/domain"

type CreateOrderRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
	KeyID    string  `json:"key_id"`
}

type VerifyRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type VerifyResponse struct {
	Booking *domain.Booking `json:"booking"`
}

type StatusResponse struct {
	BookingID     int64                `json:"booking_id"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Order         *domain.PaymentOrder `json:"order,omitempty"`
}

type FailRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Reason  string `json:"reason"`
}

type RefundRequest struct {
	Amount *float64 `json:"amount"`
}
