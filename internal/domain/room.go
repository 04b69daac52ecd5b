package domain

import "time"

type RoomType string

const (
	RoomStandard  RoomType = "standard"
	RoomDeluxe    RoomType = "deluxe"
	RoomCottage   RoomType = "cottage"
	RoomDormitory RoomType = "dormitory"
)

// Room availability over time is derived from the absence of overlapping
// active bookings; IsAvailable is only the static "offered at all" flag.
type Room struct {
	ID            int64     `json:"id"`
	RoomNumber    string    `json:"room_number" validate:"required"`
	RoomType      RoomType  `json:"room_type" validate:"required"`
	Description   string    `json:"description,omitempty"`
	PricePerNight float64   `json:"price_per_night" validate:"required,gte=0"`
	Capacity      int       `json:"capacity" validate:"required,gt=0"`
	Amenities     []string  `json:"amenities,omitempty"`
	IsAvailable   bool      `json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
