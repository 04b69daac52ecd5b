package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type BookingType string

const (
	BookingTypeRoom BookingType = "room"
	BookingTypeYoga BookingType = "yoga"
)

// CanCancel reports whether a booking in this status may still be cancelled.
// Cancellation after check-in is rejected.
func (s BookingStatus) CanCancel() bool {
	return s == BookingPending || s == BookingConfirmed
}

// BlocksRoom reports whether a booking in this status holds the room for its
// date range. Pending (unpaid) bookings block too; stale ones are swept by
// the expiry job.
func (s BookingStatus) BlocksRoom() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCheckedIn
}

type Guest struct {
	Name     string `json:"name" validate:"required"`
	Age      int    `json:"age" validate:"gte=0,lte=120"`
	IsChild  bool   `json:"is_child"`
	Gender   string `json:"gender,omitempty"`
	IDType   string `json:"id_type,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
}

type PrimaryGuest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type Transport struct {
	Pickup       bool       `json:"pickup"`
	Drop         bool       `json:"drop"`
	FlightNumber string     `json:"flight_number,omitempty"`
	PickupTime   *time.Time `json:"pickup_time,omitempty"`
	AirportFrom  string     `json:"airport_from,omitempty"`
	AirportTo    string     `json:"airport_to,omitempty"`
}

type SelectedService struct {
	ServiceID  int64   `json:"service_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// YogaRefKind discriminates the two kinds of yoga session a booking can
// reference: a scheduled batch with capacity, or a daily drop-in slot that
// has no seat accounting.
type YogaRefKind string

const (
	YogaRefScheduled YogaRefKind = "scheduled"
	YogaRefDaily     YogaRefKind = "daily"
)

type YogaRef struct {
	Kind      YogaRefKind `json:"kind"`
	SessionID int64       `json:"session_id,omitempty"` // set when Kind == scheduled
	SlotKey   string      `json:"slot_key,omitempty"`   // set when Kind == daily, e.g. "morning-hatha"
}

func ScheduledYoga(sessionID int64) *YogaRef {
	return &YogaRef{Kind: YogaRefScheduled, SessionID: sessionID}
}

func DailyYoga(slotKey string) *YogaRef {
	return &YogaRef{Kind: YogaRefDaily, SlotKey: slotKey}
}

type Booking struct {
	ID int64 `json:"id"`

	// Exactly one of UserID / GuestEmail identifies the booker.
	UserID     *int64 `json:"user_id,omitempty"`
	GuestEmail string `json:"guest_email,omitempty"`

	BookingType BookingType `json:"booking_type"`
	RoomID      *int64      `json:"room_id,omitempty"` // absent for pure yoga bookings

	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`

	Guests       []Guest       `json:"guests"`
	PrimaryGuest *PrimaryGuest `json:"primary_guest,omitempty"`
	TotalGuests  int           `json:"total_guests"`
	Adults       int           `json:"adults"`
	Children     int           `json:"children"`

	IncludeFood      bool              `json:"include_food"`
	IncludeBreakfast bool              `json:"include_breakfast"`
	Transport        *Transport        `json:"transport,omitempty"`
	SelectedServices []SelectedService `json:"selected_services,omitempty"`
	YogaRef          *YogaRef          `json:"yoga_ref,omitempty"`

	RoomPrice      float64 `json:"room_price"`
	FoodPrice      float64 `json:"food_price"`
	BreakfastPrice float64 `json:"breakfast_price"`
	ServicesPrice  float64 `json:"services_price"`
	TransportPrice float64 `json:"transport_price"`
	YogaPrice      float64 `json:"yoga_price"`
	TotalAmount    float64 `json:"total_amount"`

	CouponCode     string   `json:"coupon_code,omitempty"`
	CouponDiscount *float64 `json:"coupon_discount,omitempty"`
	FinalAmount    *float64 `json:"final_amount,omitempty"`

	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentID     string        `json:"payment_id,omitempty"`

	SpecialRequests string `json:"special_requests,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// AmountDue is what the guest actually pays: final amount when a coupon
// discount applied, total otherwise.
func (b *Booking) AmountDue() float64 {
	if b.FinalAmount != nil {
		return *b.FinalAmount
	}
	return b.TotalAmount
}
