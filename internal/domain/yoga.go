package domain

import "time"

type YogaSessionType string

const (
	Yoga200Hr YogaSessionType = "200hr"
	Yoga300Hr YogaSessionType = "300hr"
)

// YogaSession is a scheduled batch with seat accounting. BookedSeats moves
// only on payment success (up) and cancellation of a paid booking (down);
// 0 <= BookedSeats <= Capacity always.
type YogaSession struct {
	ID          int64           `json:"id"`
	Type        YogaSessionType `json:"type"`
	BatchName   string          `json:"batch_name"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Capacity    int             `json:"capacity"`
	BookedSeats int             `json:"booked_seats"`
	Price       float64         `json:"price"`
	Instructor  string          `json:"instructor,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (s *YogaSession) AvailableSeats() int {
	return s.Capacity - s.BookedSeats
}
