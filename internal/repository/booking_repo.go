package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	UserID     *int64 `gorm:"column:user_id;index"`
	GuestEmail string `gorm:"column:guest_email"`

	BookingType string `gorm:"column:booking_type;not null"`
	RoomID      *int64 `gorm:"column:room_id;index"`

	CheckIn  time.Time `gorm:"column:check_in;index"`
	CheckOut time.Time `gorm:"column:check_out"`

	Guests       string `gorm:"column:guests;type:text"`
	PrimaryGuest string `gorm:"column:primary_guest;type:text"`
	TotalGuests  int    `gorm:"column:total_guests"`
	Adults       int    `gorm:"column:adults"`
	Children     int    `gorm:"column:children"`

	IncludeFood      bool   `gorm:"column:include_food"`
	IncludeBreakfast bool   `gorm:"column:include_breakfast"`
	Transport        string `gorm:"column:transport;type:text"`
	SelectedServices string `gorm:"column:selected_services;type:text"`
	YogaSessionID    *int64 `gorm:"column:yoga_session_id;index"`
	YogaSlotKey      string `gorm:"column:yoga_slot_key"`

	RoomPrice      float64 `gorm:"column:room_price"`
	FoodPrice      float64 `gorm:"column:food_price"`
	BreakfastPrice float64 `gorm:"column:breakfast_price"`
	ServicesPrice  float64 `gorm:"column:services_price"`
	TransportPrice float64 `gorm:"column:transport_price"`
	YogaPrice      float64 `gorm:"column:yoga_price"`
	TotalAmount    float64 `gorm:"column:total_amount"`

	CouponCode     string   `gorm:"column:coupon_code"`
	CouponDiscount *float64 `gorm:"column:coupon_discount"`
	FinalAmount    *float64 `gorm:"column:final_amount"`

	Status        string `gorm:"column:status;index"`
	PaymentStatus string `gorm:"column:payment_status"`
	PaymentID     string `gorm:"column:payment_id"`

	SpecialRequests string `gorm:"column:special_requests;type:text"`

	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:               m.ID,
		UserID:           m.UserID,
		GuestEmail:       m.GuestEmail,
		BookingType:      domain.BookingType(m.BookingType),
		RoomID:           m.RoomID,
		CheckIn:          m.CheckIn,
		CheckOut:         m.CheckOut,
		TotalGuests:      m.TotalGuests,
		Adults:           m.Adults,
		Children:         m.Children,
		IncludeFood:      m.IncludeFood,
		IncludeBreakfast: m.IncludeBreakfast,
		RoomPrice:        m.RoomPrice,
		FoodPrice:        m.FoodPrice,
		BreakfastPrice:   m.BreakfastPrice,
		ServicesPrice:    m.ServicesPrice,
		TransportPrice:   m.TransportPrice,
		YogaPrice:        m.YogaPrice,
		TotalAmount:      m.TotalAmount,
		CouponCode:       m.CouponCode,
		CouponDiscount:   m.CouponDiscount,
		FinalAmount:      m.FinalAmount,
		Status:           domain.BookingStatus(m.Status),
		PaymentStatus:    domain.PaymentStatus(m.PaymentStatus),
		PaymentID:        m.PaymentID,
		SpecialRequests:  m.SpecialRequests,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		CancelledAt:      m.CancelledAt,
	}

	if m.Guests != "" {
		_ = json.Unmarshal([]byte(m.Guests), &b.Guests)
	}
	if m.PrimaryGuest != "" {
		b.PrimaryGuest = &domain.PrimaryGuest{}
		_ = json.Unmarshal([]byte(m.PrimaryGuest), b.PrimaryGuest)
	}
	if m.Transport != "" {
		b.Transport = &domain.Transport{}
		_ = json.Unmarshal([]byte(m.Transport), b.Transport)
	}
	if m.SelectedServices != "" {
		_ = json.Unmarshal([]byte(m.SelectedServices), &b.SelectedServices)
	}
	if m.YogaSessionID != nil {
		b.YogaRef = domain.ScheduledYoga(*m.YogaSessionID)
	} else if m.YogaSlotKey != "" {
		b.YogaRef = domain.DailyYoga(m.YogaSlotKey)
	}

	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:               b.ID,
		UserID:           b.UserID,
		GuestEmail:       b.GuestEmail,
		BookingType:      string(b.BookingType),
		RoomID:           b.RoomID,
		CheckIn:          b.CheckIn,
		CheckOut:         b.CheckOut,
		TotalGuests:      b.TotalGuests,
		Adults:           b.Adults,
		Children:         b.Children,
		IncludeFood:      b.IncludeFood,
		IncludeBreakfast: b.IncludeBreakfast,
		RoomPrice:        b.RoomPrice,
		FoodPrice:        b.FoodPrice,
		BreakfastPrice:   b.BreakfastPrice,
		ServicesPrice:    b.ServicesPrice,
		TransportPrice:   b.TransportPrice,
		YogaPrice:        b.YogaPrice,
		TotalAmount:      b.TotalAmount,
		CouponCode:       b.CouponCode,
		CouponDiscount:   b.CouponDiscount,
		FinalAmount:      b.FinalAmount,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentID:        b.PaymentID,
		SpecialRequests:  b.SpecialRequests,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
		CancelledAt:      b.CancelledAt,
	}

	if len(b.Guests) > 0 {
		raw, _ := json.Marshal(b.Guests)
		m.Guests = string(raw)
	}
	if b.PrimaryGuest != nil {
		raw, _ := json.Marshal(b.PrimaryGuest)
		m.PrimaryGuest = string(raw)
	}
	if b.Transport != nil {
		raw, _ := json.Marshal(b.Transport)
		m.Transport = string(raw)
	}
	if len(b.SelectedServices) > 0 {
		raw, _ := json.Marshal(b.SelectedServices)
		m.SelectedServices = string(raw)
	}
	if b.YogaRef != nil {
		switch b.YogaRef.Kind {
		case domain.YogaRefScheduled:
			id := b.YogaRef.SessionID
			m.YogaSessionID = &id
		case domain.YogaRefDaily:
			m.YogaSlotKey = b.YogaRef.SlotKey
		}
	}

	return m
}

// BookingFilter holds the named optional filters for listing bookings.
// Each set field maps to exactly one WHERE clause.
type BookingFilter struct {
	UserID     *int64
	GuestEmail string
	RoomID     *int64
	Status     domain.BookingStatus
	Limit      int
	Offset     int
}

func (f BookingFilter) apply(q *gorm.DB) *gorm.DB {
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.GuestEmail != "" {
		q = q.Where("guest_email = ?", f.GuestEmail)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	return q
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FindOverlapping returns bookings for the room that still block it and whose
// half-open [check_in, check_out) range intersects the given one.
func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	q := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status IN ?", []string{
			string(domain.BookingPending),
			string(domain.BookingConfirmed),
			string(domain.BookingCheckedIn),
		}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	var rows []bookingModel
	q := f.apply(r.db.WithContext(ctx).Model(&bookingModel{})).Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) Count(ctx context.Context, f BookingFilter) (int64, error) {
	var n int64
	err := f.apply(r.db.WithContext(ctx).Model(&bookingModel{})).Count(&n).Error
	return n, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *BookingRepository) MarkPaid(ctx context.Context, id int64, paymentID string) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         string(domain.BookingConfirmed),
			"payment_status": string(domain.PaymentPaid),
			"payment_id":     paymentID,
		}).Error
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("payment_status", string(status)).Error
}

func (r *BookingRepository) Cancel(ctx context.Context, id int64, at time.Time, paymentStatus domain.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         string(domain.BookingCancelled),
			"payment_status": string(paymentStatus),
			"cancelled_at":   at,
		}).Error
}

// FindStalePending returns unpaid pending bookings created before the cutoff.
// Used by the expiry sweeper to stop abandoned bookings from starving rooms.
func (r *BookingRepository) FindStalePending(ctx context.Context, before time.Time, limit int) ([]domain.Booking, error) {
	var rows []bookingModel
	q := r.db.WithContext(ctx).
		Where("status = ?", string(domain.BookingPending)).
		Where("payment_status IN ?", []string{string(domain.PaymentPending), string(domain.PaymentFailed)}).
		Where("created_at < ?", before).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
