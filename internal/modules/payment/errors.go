package payment

import "errors"

var (
	ErrOrderNotFound    = errors.New("payment order not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingNotOpen   = errors.New("booking is not awaiting payment")
	ErrAlreadyPaid      = errors.New("booking is already paid")
	ErrInvalidSignature = errors.New("payment signature verification failed")
	ErrNotPaid          = errors.New("payment order is not paid")
	ErrAlreadyRefunded  = errors.New("payment has already been refunded")
)
