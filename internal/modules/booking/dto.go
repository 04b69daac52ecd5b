package booking

import (
	"time"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

const dateLayout = "2006-01-02"

type GuestRequest struct {
	Name     string `json:"name" binding:"required"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`
}

type PrimaryGuestRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type TransportRequest struct {
	Pickup       bool       `json:"pickup"`
	Drop         bool       `json:"drop"`
	FlightNumber string     `json:"flight_number"`
	PickupTime   *time.Time `json:"pickup_time"`
	AirportFrom  string     `json:"airport_from"`
	AirportTo    string     `json:"airport_to"`
}

type SelectedServiceRequest struct {
	ServiceID int64 `json:"service_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gte=1"`
}

type CreateBookingRequest struct {
	BookingType string `json:"booking_type" binding:"required,oneof=room yoga"`

	RoomID   *int64 `json:"room_id"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`

	Guests       []GuestRequest       `json:"guests" binding:"required,dive"`
	PrimaryGuest *PrimaryGuestRequest `json:"primary_guest"`

	IncludeFood      bool                     `json:"include_food"`
	IncludeBreakfast bool                     `json:"include_breakfast"`
	Transport        *TransportRequest        `json:"transport"`
	Services         []SelectedServiceRequest `json:"services" binding:"dive"`

	YogaSessionID *int64 `json:"yoga_session_id"`
	YogaSlotKey   string `json:"yoga_slot_key"`

	CouponCode      string `json:"coupon_code"`
	SpecialRequests string `json:"special_requests"`

	// Contact for unauthenticated bookings; ignored when a token is present.
	GuestEmail string `json:"guest_email"`
}

// toBooking maps the request onto a fresh domain booking. Dates and prices
// are filled in by the service.
func (r *CreateBookingRequest) toBooking() *domain.Booking {
	b := &domain.Booking{
		BookingType:      domain.BookingType(r.BookingType),
		RoomID:           r.RoomID,
		IncludeFood:      r.IncludeFood,
		IncludeBreakfast: r.IncludeBreakfast,
		CouponCode:       r.CouponCode,
		SpecialRequests:  r.SpecialRequests,
	}

	for _, g := range r.Guests {
		b.Guests = append(b.Guests, domain.Guest{
			Name:     g.Name,
			Age:      g.Age,
			IsChild:  g.Age < childFreeAge,
			Gender:   g.Gender,
			IDType:   g.IDType,
			IDNumber: g.IDNumber,
		})
	}
	if r.PrimaryGuest != nil {
		b.PrimaryGuest = &domain.PrimaryGuest{
			Name:  r.PrimaryGuest.Name,
			Email: r.PrimaryGuest.Email,
			Phone: r.PrimaryGuest.Phone,
		}
	}
	if r.Transport != nil {
		b.Transport = &domain.Transport{
			Pickup:       r.Transport.Pickup,
			Drop:         r.Transport.Drop,
			FlightNumber: r.Transport.FlightNumber,
			PickupTime:   r.Transport.PickupTime,
			AirportFrom:  r.Transport.AirportFrom,
			AirportTo:    r.Transport.AirportTo,
		}
	}
	if r.YogaSessionID != nil {
		b.YogaRef = domain.ScheduledYoga(*r.YogaSessionID)
	} else if r.YogaSlotKey != "" {
		b.YogaRef = domain.DailyYoga(r.YogaSlotKey)
	}

	return b
}

type ListBookingsQuery struct {
	Status string `form:"status"`
	RoomID *int64 `form:"room_id"`
	UserID *int64 `form:"user_id"`
	Email  string `form:"email"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type ListBookingsResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}
