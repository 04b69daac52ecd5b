package catalog

import (
	"time"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

type CreateRoomRequest struct {
	RoomNumber    string   `json:"room_number" binding:"required"`
	RoomType      string   `json:"room_type" binding:"required,oneof=standard deluxe cottage dormitory"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"price_per_night" binding:"required,gt=0"`
	Capacity      int      `json:"capacity" binding:"required,gt=0"`
	Amenities     []string `json:"amenities"`
	IsAvailable   *bool    `json:"is_available"`
}

func (r *CreateRoomRequest) toRoom() *domain.Room {
	room := &domain.Room{
		RoomNumber:    r.RoomNumber,
		RoomType:      domain.RoomType(r.RoomType),
		Description:   r.Description,
		PricePerNight: r.PricePerNight,
		Capacity:      r.Capacity,
		Amenities:     r.Amenities,
		IsAvailable:   true,
	}
	if r.IsAvailable != nil {
		room.IsAvailable = *r.IsAvailable
	}
	return room
}

type UpdateRoomRequest struct {
	Description   *string   `json:"description"`
	PricePerNight *float64  `json:"price_per_night"`
	Capacity      *int      `json:"capacity"`
	Amenities     *[]string `json:"amenities"`
	IsAvailable   *bool     `json:"is_available"`
}

type AvailabilityQuery struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
	Guests   int    `form:"guests"`
}

type AvailableRoom struct {
	Room   domain.Room `json:"room"`
	Nights int         `json:"nights"`
	Total  float64     `json:"total"`
}

type CreateServiceRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Category       string                 `json:"category" binding:"required,oneof=addon transport food yoga adventure"`
	Subcategory    string                 `json:"subcategory"`
	Price          float64                `json:"price" binding:"gte=0"`
	PriceUnit      string                 `json:"price_unit" binding:"required,oneof=per_person per_day per_session flat_rate"`
	Description    string                 `json:"description"`
	AgeRestriction *domain.AgeRestriction `json:"age_restriction"`
	AvailableSlots *int                   `json:"available_slots"`
	IsActive       *bool                  `json:"is_active"`
}

func (r *CreateServiceRequest) toService() *domain.Service {
	svc := &domain.Service{
		Name:           r.Name,
		Category:       domain.ServiceCategory(r.Category),
		Subcategory:    r.Subcategory,
		Price:          r.Price,
		PriceUnit:      domain.PriceUnit(r.PriceUnit),
		Description:    r.Description,
		AgeRestriction: r.AgeRestriction,
		AvailableSlots: r.AvailableSlots,
		IsActive:       true,
	}
	if r.IsActive != nil {
		svc.IsActive = *r.IsActive
	}
	return svc
}

type UpdateServiceRequest struct {
	Name           *string                `json:"name"`
	Subcategory    *string                `json:"subcategory"`
	Price          *float64               `json:"price"`
	PriceUnit      *string                `json:"price_unit"`
	Description    *string                `json:"description"`
	AgeRestriction *domain.AgeRestriction `json:"age_restriction"`
	AvailableSlots *int                   `json:"available_slots"`
	IsActive       *bool                  `json:"is_active"`
}

type CreateSessionRequest struct {
	Type       string    `json:"type" binding:"required,oneof=200hr 300hr"`
	BatchName  string    `json:"batch_name" binding:"required"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
	Capacity   int       `json:"capacity" binding:"required,gt=0"`
	Price      float64   `json:"price" binding:"required,gt=0"`
	Instructor string    `json:"instructor"`
	IsActive   *bool     `json:"is_active"`
}

func (r *CreateSessionRequest) toSession() *domain.YogaSession {
	s := &domain.YogaSession{
		Type:       domain.YogaSessionType(r.Type),
		BatchName:  r.BatchName,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Capacity:   r.Capacity,
		Price:      r.Price,
		Instructor: r.Instructor,
		IsActive:   true,
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return s
}

type UpdateSessionRequest struct {
	BatchName  *string    `json:"batch_name"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Capacity   *int       `json:"capacity"`
	Price      *float64   `json:"price"`
	Instructor *string    `json:"instructor"`
	IsActive   *bool      `json:"is_active"`
}

type SessionResponse struct {
	domain.YogaSession
	AvailableSeats int `json:"available_seats"`
}
