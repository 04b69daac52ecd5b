package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store bundles all repositories over one gorm handle so that workflows can
// run multi-aggregate sequences inside a single database transaction.
type Store struct {
	db *gorm.DB

	Bookings      *BookingRepository
	Rooms         *RoomRepository
	YogaSessions  *YogaSessionRepository
	Services      *ServiceRepository
	Coupons       *CouponRepository
	CouponUsages  *CouponUsageRepository
	PaymentOrders *PaymentOrderRepository
	Users         *UserRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Bookings:      NewBookingRepository(db),
		Rooms:         NewRoomRepository(db),
		YogaSessions:  NewYogaSessionRepository(db),
		Services:      NewServiceRepository(db),
		Coupons:       NewCouponRepository(db),
		CouponUsages:  NewCouponUsageRepository(db),
		PaymentOrders: NewPaymentOrderRepository(db),
		Users:         NewUserRepository(db),
	}
}

// Transact runs fn against a store bound to one database transaction.
// Any error aborts the whole transaction; nothing is persisted partially.
func (s *Store) Transact(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&yogaSessionModel{},
		&serviceModel{},
		&couponModel{},
		&couponUsageModel{},
		&bookingModel{},
		&paymentOrderModel{},
	)
}

// isUniqueViolation recognizes unique-constraint failures from both backends:
// Postgres reports SQLSTATE 23505 through pgconn, sqlite reports a
// "UNIQUE constraint failed" message.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
