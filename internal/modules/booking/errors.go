package booking

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room is not available for booking")
	ErrRoomConflict    = errors.New("room is already booked for the selected dates")

	ErrInvalidDates = errors.New("check-out must be after check-in")
	ErrPastCheckIn  = errors.New("check-in date cannot be in the past")
	ErrTooFarAhead  = errors.New("bookings can be made at most 365 days in advance")

	ErrNoGuests      = errors.New("at least one guest is required")
	ErrNoAdult       = errors.New("at least one adult guest aged 18 or older is required")
	ErrGuestName     = errors.New("guest name is required")
	ErrGuestAge      = errors.New("guest age must be between 0 and 120")
	ErrBookerMissing = errors.New("a user account or guest email is required")

	ErrSessionNotFound = errors.New("yoga session not found")
	ErrSessionInactive = errors.New("yoga session is not open for booking")
	ErrSessionStarted  = errors.New("yoga session has already started")

	ErrServiceNotFound    = errors.New("selected service not found")
	ErrServiceInactive    = errors.New("selected service is not available")
	ErrServiceQuantity    = errors.New("service quantity must be at least 1")
	ErrServiceSlots       = errors.New("not enough slots left for the selected service")

	ErrCancelNotAllowed = errors.New("booking can no longer be cancelled")
	ErrNotOwner         = errors.New("booking belongs to another customer")

	ErrCouponExhausted = errors.New("coupon usage limit reached")
)

// CapacityError rejects a guest list larger than the room sleeps.
type CapacityError struct {
	Capacity int
	Guests   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("room sleeps %d guests, got %d", e.Capacity, e.Guests)
}

// AgeRestrictionError names the guest who falls outside a service's age
// bounds. One out-of-range guest rejects the whole booking.
type AgeRestrictionError struct {
	GuestName   string
	ServiceName string
}

func (e *AgeRestrictionError) Error() string {
	return fmt.Sprintf("guest %q does not meet the age restriction for service %q", e.GuestName, e.ServiceName)
}

// SeatsError reports a yoga session that cannot fit the requested group.
type SeatsError struct {
	Available int
	Required  int
}

func (e *SeatsError) Error() string {
	noun := "seats"
	if e.Available == 1 {
		noun = "seat"
	}
	return fmt.Sprintf("only %d %s available, required %d", e.Available, noun, e.Required)
}
