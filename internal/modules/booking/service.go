package booking

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

type Service struct {
	store   *repository.Store
	coupons CouponLedger
	pricer  Pricer
	notify  Notifier
	log     *logrus.Logger
}

func NewService(store *repository.Store, coupons CouponLedger, pricer Pricer, notify Notifier, log *logrus.Logger) *Service {
	return &Service{
		store:   store,
		coupons: coupons,
		pricer:  pricer,
		notify:  notify,
		log:     log,
	}
}

// Create runs the full reservation workflow: validation, pricing, coupon
// application and one transactional insert. The booking comes back in
// pending/pending state; no seats or slots are committed until payment.
func (s *Service) Create(ctx context.Context, userID *int64, req *CreateBookingRequest) (*domain.Booking, error) {
	b := req.toBooking()
	b.UserID = userID
	if userID == nil {
		b.GuestEmail = req.GuestEmail
		if b.GuestEmail == "" && b.PrimaryGuest != nil {
			b.GuestEmail = b.PrimaryGuest.Email
		}
		if b.GuestEmail == "" {
			return nil, ErrBookerMissing
		}
	}

	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return nil, ErrInvalidDates
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return nil, ErrInvalidDates
	}
	b.CheckIn, b.CheckOut = checkIn, checkOut

	now := time.Now()
	if err := ValidateStay(b.CheckIn, b.CheckOut, now); err != nil {
		return nil, err
	}

	var room *domain.Room
	if b.RoomID != nil {
		room, err = s.store.Rooms.GetByID(ctx, *b.RoomID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		if err != nil {
			return nil, err
		}
		if !room.IsAvailable {
			return nil, ErrRoomUnavailable
		}
	}

	capacity := 0
	if room != nil {
		capacity = room.Capacity
	}
	if err := ValidateGuests(b.Guests, capacity); err != nil {
		return nil, err
	}

	if room != nil {
		overlaps, err := s.store.Bookings.FindOverlapping(ctx, room.ID, b.CheckIn, b.CheckOut, 0)
		if err != nil {
			return nil, err
		}
		if len(overlaps) > 0 {
			return nil, ErrRoomConflict
		}
	}

	yogaPrice, err := s.resolveYoga(ctx, b, now)
	if err != nil {
		return nil, err
	}

	if err := s.resolveServices(ctx, b, req.Services); err != nil {
		return nil, err
	}

	breakfastRate := 0.0
	if b.IncludeBreakfast {
		bf, err := s.store.Services.FindBreakfast(ctx)
		switch {
		case err == nil:
			breakfastRate = bf.Price
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Configured fallback rate applies.
		default:
			return nil, err
		}
	}

	s.pricer.Price(b, room, yogaPrice, breakfastRate)

	var coupon *domain.Coupon
	if b.CouponCode != "" {
		phone := ""
		if b.PrimaryGuest != nil {
			phone = b.PrimaryGuest.Phone
		}
		c, discount, err := s.coupons.Validate(ctx, b.CouponCode, b.TotalAmount, serviceTypeOf(b), b.UserID, phone)
		if err != nil {
			return nil, err
		}
		coupon = c
		final := b.TotalAmount - discount
		b.CouponDiscount = &discount
		b.FinalAmount = &final
	}

	b.Status = domain.BookingPending
	b.PaymentStatus = domain.PaymentPending

	err = s.store.Transact(ctx, func(tx *repository.Store) error {
		// A racing booking may have slipped in between the first check
		// and this transaction.
		if b.RoomID != nil {
			overlaps, err := tx.Bookings.FindOverlapping(ctx, *b.RoomID, b.CheckIn, b.CheckOut, 0)
			if err != nil {
				return err
			}
			if len(overlaps) > 0 {
				return ErrRoomConflict
			}
		}

		if err := tx.Bookings.Create(ctx, b); err != nil {
			return err
		}

		if coupon != nil {
			if err := tx.Coupons.IncrementUsage(ctx, coupon.ID); err != nil {
				if errors.Is(err, repository.ErrUsageLimitReached) {
					return ErrCouponExhausted
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"type":       b.BookingType,
		"total":      b.TotalAmount,
		"due":        b.AmountDue(),
	}).Info("booking created")

	if s.notify != nil {
		go s.notify.BookingCreated(context.WithoutCancel(ctx), b)
	}
	return b, nil
}

// resolveYoga validates the yoga reference and returns its price share.
func (s *Service) resolveYoga(ctx context.Context, b *domain.Booking, now time.Time) (float64, error) {
	if b.YogaRef == nil {
		return 0, nil
	}

	switch b.YogaRef.Kind {
	case domain.YogaRefScheduled:
		session, err := s.store.YogaSessions.GetByID(ctx, b.YogaRef.SessionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSessionNotFound
		}
		if err != nil {
			return 0, err
		}
		if err := ValidateSession(session, len(b.Guests), now); err != nil {
			return 0, err
		}
		return session.Price, nil

	case domain.YogaRefDaily:
		slot, err := s.store.Services.FindYogaSlot(ctx, b.YogaRef.SlotKey)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSessionNotFound
		}
		if err != nil {
			return 0, err
		}
		return slot.Price * float64(len(b.Guests)), nil
	}
	return 0, nil
}

// resolveServices loads each selected service, validates it and computes its
// line total.
func (s *Service) resolveServices(ctx context.Context, b *domain.Booking, selections []SelectedServiceRequest) error {
	nights := Nights(b.CheckIn, b.CheckOut)
	for _, sel := range selections {
		svc, err := s.store.Services.GetByID(ctx, sel.ServiceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		if err != nil {
			return err
		}
		if err := ValidateServiceSelection(svc, sel.Quantity, b.Guests); err != nil {
			return err
		}

		b.SelectedServices = append(b.SelectedServices, domain.SelectedService{
			ServiceID:  svc.ID,
			Quantity:   sel.Quantity,
			TotalPrice: ServiceLineTotal(svc, sel.Quantity, len(b.Guests), nights),
		})
	}
	return nil
}

// serviceTypeOf classifies a booking for coupon applicability.
func serviceTypeOf(b *domain.Booking) domain.ServiceType {
	if b.YogaRef != nil || b.BookingType == domain.BookingTypeYoga {
		return domain.ServiceTypeYoga
	}
	if b.Transport != nil && (b.Transport.Pickup || b.Transport.Drop) {
		return domain.ServiceTypeAirport
	}
	// Plain room stays carry no service type; only unrestricted coupons
	// apply to them.
	return ""
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.store.Bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	total, err := s.store.Bookings.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	bookings, err := s.store.Bookings.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// Cancel moves a pending or confirmed booking to cancelled. Capacity is
// released only when the booking had been paid, since unpaid bookings never
// committed any.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanCancel() {
		return nil, ErrCancelNotAllowed
	}

	paymentStatus := b.PaymentStatus
	if paymentStatus == domain.PaymentPaid {
		paymentStatus = domain.PaymentRefunded
	}

	now := time.Now()
	err = s.store.Transact(ctx, func(tx *repository.Store) error {
		if b.PaymentStatus == domain.PaymentPaid {
			if err := releaseCapacity(ctx, tx, b); err != nil {
				return err
			}
		}
		return tx.Bookings.Cancel(ctx, b.ID, now, paymentStatus)
	})
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingCancelled
	b.PaymentStatus = paymentStatus
	b.CancelledAt = &now

	s.log.WithField("booking_id", b.ID).Info("booking cancelled")
	if s.notify != nil {
		go s.notify.BookingCancelled(context.WithoutCancel(ctx), b)
	}
	return b, nil
}

// releaseCapacity reverses the capacity commit of a paid booking.
func releaseCapacity(ctx context.Context, tx *repository.Store, b *domain.Booking) error {
	if b.YogaRef != nil && b.YogaRef.Kind == domain.YogaRefScheduled {
		if err := tx.YogaSessions.AddBookedSeats(ctx, b.YogaRef.SessionID, -b.TotalGuests); err != nil {
			return err
		}
	}
	for _, sel := range b.SelectedServices {
		if err := tx.Services.AdjustSlots(ctx, sel.ServiceID, sel.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// ExpireStalePending cancels unpaid pending bookings older than ttl so they
// stop blocking rooms. Returns how many were cancelled.
func (s *Service) ExpireStalePending(ctx context.Context, ttl time.Duration, limit int) (int, error) {
	cutoff := time.Now().Add(-ttl)
	stale, err := s.store.Bookings.FindStalePending(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		b := &stale[i]
		now := time.Now()
		err := s.store.Transact(ctx, func(tx *repository.Store) error {
			return tx.Bookings.Cancel(ctx, b.ID, now, b.PaymentStatus)
		})
		if err != nil {
			s.log.WithError(err).WithField("booking_id", b.ID).Warn("failed to expire booking")
			continue
		}
		expired++
	}
	return expired, nil
}
