package booking

import (
	"time"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

const maxAdvanceDays = 365

// ValidateStay checks the date range of a room stay. Today counts from
// midnight so a same-day check-in is accepted all day.
func ValidateStay(checkIn, checkOut, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if checkIn.Before(today) {
		return ErrPastCheckIn
	}
	if !checkOut.After(checkIn) {
		return ErrInvalidDates
	}
	if checkIn.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return ErrTooFarAhead
	}
	return nil
}

// ValidateGuests checks the guest list against a room capacity. Capacity of
// zero skips the capacity check (yoga-only bookings have no room).
func ValidateGuests(guests []domain.Guest, capacity int) error {
	if len(guests) == 0 {
		return ErrNoGuests
	}
	if capacity > 0 && len(guests) > capacity {
		return &CapacityError{Capacity: capacity, Guests: len(guests)}
	}

	hasAdult := false
	for _, g := range guests {
		if g.Name == "" {
			return ErrGuestName
		}
		if g.Age < 0 || g.Age > 120 {
			return ErrGuestAge
		}
		if g.Age >= adultAge {
			hasAdult = true
		}
	}
	if !hasAdult {
		return ErrNoAdult
	}
	return nil
}

// ValidateSession checks that a scheduled yoga session can take the group.
func ValidateSession(s *domain.YogaSession, seats int, now time.Time) error {
	if !s.IsActive {
		return ErrSessionInactive
	}
	if !s.StartDate.After(now) {
		return ErrSessionStarted
	}
	if s.AvailableSeats() < seats {
		return &SeatsError{Available: s.AvailableSeats(), Required: seats}
	}
	return nil
}

// ValidateServiceSelection checks one selected service against quantity,
// activity, slot stock and age restrictions.
func ValidateServiceSelection(svc *domain.Service, qty int, guests []domain.Guest) error {
	if qty < 1 {
		return ErrServiceQuantity
	}
	if !svc.IsActive {
		return ErrServiceInactive
	}
	if svc.AvailableSlots != nil && *svc.AvailableSlots < qty {
		return ErrServiceSlots
	}
	if r := svc.AgeRestriction; r != nil {
		for _, g := range guests {
			if (r.MinAge != nil && g.Age < *r.MinAge) || (r.MaxAge != nil && g.Age > *r.MaxAge) {
				return &AgeRestrictionError{GuestName: g.Name, ServiceName: svc.Name}
			}
		}
	}
	return nil
}
