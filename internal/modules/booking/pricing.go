package booking

import (
	"math"
	"time"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

const (
	// Guests younger than this stay free and are skipped by food and
	// breakfast pricing.
	childFreeAge = 5

	adultAge = 18

	foodRatePerPersonPerDay = 150.0
)

// Pricer computes the full price breakdown of a booking from already-loaded
// catalog data. It holds the configured fees so the math stays pure.
type Pricer struct {
	PickupFee         float64
	DropFee           float64
	FallbackBreakfast float64
}

// Nights counts billable nights as whole 24h blocks, rounding partial
// blocks up.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// PayingGuests counts guests old enough to be charged for meals and
// per-person services.
func PayingGuests(guests []domain.Guest) int {
	n := 0
	for _, g := range guests {
		if g.Age >= childFreeAge {
			n++
		}
	}
	return n
}

// ServiceLineTotal prices one selected service according to its unit.
func ServiceLineTotal(svc *domain.Service, qty, totalGuests, nights int) float64 {
	switch svc.PriceUnit {
	case domain.PerPerson:
		return svc.Price * float64(totalGuests) * float64(qty)
	case domain.PerDay:
		return svc.Price * float64(qty) * float64(nights)
	default: // per_session, flat_rate
		return svc.Price * float64(qty)
	}
}

func (p Pricer) transportPrice(t *domain.Transport) float64 {
	if t == nil {
		return 0
	}
	var total float64
	if t.Pickup {
		total += p.PickupFee
	}
	if t.Drop {
		total += p.DropFee
	}
	return total
}

// Price fills the booking's price fields. Selected services must already
// carry their computed TotalPrice; breakfastRate of zero falls back to the
// configured default.
func (p Pricer) Price(b *domain.Booking, room *domain.Room, yogaPrice, breakfastRate float64) {
	nights := Nights(b.CheckIn, b.CheckOut)
	paying := PayingGuests(b.Guests)

	// Adults here means "not a free-staying child"; the 18+ rule is a
	// validation concern, not a pricing one.
	b.TotalGuests = len(b.Guests)
	b.Adults = paying
	b.Children = b.TotalGuests - paying

	if room != nil {
		b.RoomPrice = room.PricePerNight * float64(nights)
	}
	if b.IncludeFood {
		b.FoodPrice = foodRatePerPersonPerDay * float64(paying) * float64(nights)
	}
	if b.IncludeBreakfast {
		rate := breakfastRate
		if rate <= 0 {
			rate = p.FallbackBreakfast
		}
		b.BreakfastPrice = rate * float64(paying) * float64(nights)
	}

	b.ServicesPrice = 0
	for _, s := range b.SelectedServices {
		b.ServicesPrice += s.TotalPrice
	}
	b.TransportPrice = p.transportPrice(b.Transport)
	b.YogaPrice = yogaPrice

	b.TotalAmount = b.RoomPrice + b.FoodPrice + b.BreakfastPrice +
		b.ServicesPrice + b.TransportPrice + b.YogaPrice
}
