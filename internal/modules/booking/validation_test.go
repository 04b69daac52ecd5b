package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

func TestValidateStay(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  error
	}{
		{"valid future stay", date(2026, 9, 10), date(2026, 9, 13), nil},
		{"same-day check-in allowed", date(2026, 8, 31), date(2026, 9, 1), nil},
		{"past check-in", date(2026, 8, 30), date(2026, 9, 2), ErrPastCheckIn},
		{"check-out equals check-in", date(2026, 9, 10), date(2026, 9, 10), ErrInvalidDates},
		{"check-out before check-in", date(2026, 9, 10), date(2026, 9, 8), ErrInvalidDates},
		{"exactly 365 days ahead allowed", date(2027, 8, 31), date(2027, 9, 2), nil},
		{"beyond 365 days", date(2027, 9, 1), date(2027, 9, 3), ErrTooFarAhead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStay(tt.checkIn, tt.checkOut, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGuests(t *testing.T) {
	adult := domain.Guest{Name: "Asha", Age: 30}
	child := domain.Guest{Name: "Kiran", Age: 7}

	t.Run("valid group", func(t *testing.T) {
		assert.NoError(t, ValidateGuests([]domain.Guest{adult, child}, 4))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.ErrorIs(t, ValidateGuests(nil, 4), ErrNoGuests)
	})

	t.Run("over capacity", func(t *testing.T) {
		err := ValidateGuests([]domain.Guest{adult, adult, child}, 2)
		var capErr *CapacityError
		assert.ErrorAs(t, err, &capErr)
		assert.Equal(t, 2, capErr.Capacity)
		assert.Equal(t, 3, capErr.Guests)
	})

	t.Run("zero capacity skips the check", func(t *testing.T) {
		assert.NoError(t, ValidateGuests([]domain.Guest{adult, adult, adult}, 0))
	})

	t.Run("no adult", func(t *testing.T) {
		teen := domain.Guest{Name: "Mira", Age: 16}
		assert.ErrorIs(t, ValidateGuests([]domain.Guest{teen, child}, 4), ErrNoAdult)
	})

	t.Run("missing name", func(t *testing.T) {
		assert.ErrorIs(t, ValidateGuests([]domain.Guest{{Age: 30}}, 4), ErrGuestName)
	})

	t.Run("age out of range", func(t *testing.T) {
		assert.ErrorIs(t, ValidateGuests([]domain.Guest{{Name: "X", Age: 130}, adult}, 4), ErrGuestAge)
		assert.ErrorIs(t, ValidateGuests([]domain.Guest{{Name: "X", Age: -1}, adult}, 4), ErrGuestAge)
	})
}

func TestValidateSession(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	base := func() *domain.YogaSession {
		return &domain.YogaSession{
			Capacity:    15,
			BookedSeats: 14,
			StartDate:   date(2026, 10, 1),
			IsActive:    true,
		}
	}

	t.Run("fits", func(t *testing.T) {
		assert.NoError(t, ValidateSession(base(), 1, now))
	})

	t.Run("not enough seats", func(t *testing.T) {
		err := ValidateSession(base(), 2, now)
		var seatsErr *SeatsError
		assert.ErrorAs(t, err, &seatsErr)
		assert.Equal(t, 1, seatsErr.Available)
		assert.Equal(t, 2, seatsErr.Required)
		assert.Equal(t, "only 1 seat available, required 2", err.Error())
	})

	t.Run("inactive", func(t *testing.T) {
		s := base()
		s.IsActive = false
		assert.ErrorIs(t, ValidateSession(s, 1, now), ErrSessionInactive)
	})

	t.Run("already started", func(t *testing.T) {
		s := base()
		s.StartDate = date(2026, 8, 1)
		assert.ErrorIs(t, ValidateSession(s, 1, now), ErrSessionStarted)
	})
}

func TestValidateServiceSelection(t *testing.T) {
	guests := []domain.Guest{{Name: "Asha", Age: 30}, {Name: "Kiran", Age: 7}}

	t.Run("valid", func(t *testing.T) {
		svc := &domain.Service{Name: "Kayaking", IsActive: true}
		assert.NoError(t, ValidateServiceSelection(svc, 1, guests))
	})

	t.Run("zero quantity", func(t *testing.T) {
		svc := &domain.Service{Name: "Kayaking", IsActive: true}
		assert.ErrorIs(t, ValidateServiceSelection(svc, 0, guests), ErrServiceQuantity)
	})

	t.Run("inactive", func(t *testing.T) {
		svc := &domain.Service{Name: "Kayaking"}
		assert.ErrorIs(t, ValidateServiceSelection(svc, 1, guests), ErrServiceInactive)
	})

	t.Run("not enough slots", func(t *testing.T) {
		slots := 1
		svc := &domain.Service{Name: "Kayaking", IsActive: true, AvailableSlots: &slots}
		assert.ErrorIs(t, ValidateServiceSelection(svc, 2, guests), ErrServiceSlots)
	})

	t.Run("unlimited slots", func(t *testing.T) {
		svc := &domain.Service{Name: "Kayaking", IsActive: true}
		assert.NoError(t, ValidateServiceSelection(svc, 50, guests))
	})

	t.Run("age restriction names the guest and service", func(t *testing.T) {
		minAge := 12
		svc := &domain.Service{Name: "Kayaking", IsActive: true, AgeRestriction: &domain.AgeRestriction{MinAge: &minAge}}
		err := ValidateServiceSelection(svc, 1, guests)

		var ageErr *AgeRestrictionError
		assert.ErrorAs(t, err, &ageErr)
		assert.Equal(t, "Kiran", ageErr.GuestName)
		assert.Equal(t, "Kayaking", ageErr.ServiceName)
	})
}
