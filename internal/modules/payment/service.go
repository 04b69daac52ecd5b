package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

type Service struct {
	store    *repository.Store
	provider Provider
	coupons  CouponRecorder
	notify   Notifier
	log      *logrus.Logger

	keyID    string
	currency string
}

func NewService(store *repository.Store, provider Provider, coupons CouponRecorder, notify Notifier, log *logrus.Logger, keyID, currency string) *Service {
	return &Service{
		store:    store,
		provider: provider,
		coupons:  coupons,
		notify:   notify,
		log:      log,
		keyID:    keyID,
		currency: currency,
	}
}

// CreateOrder opens a gateway order for the booking's amount due. Calling it
// again while an order is still open returns that order instead of opening a
// second one.
func (s *Service) CreateOrder(ctx context.Context, bookingID int64) (*CreateOrderResponse, error) {
	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if b.Status != domain.BookingPending {
		return nil, ErrBookingNotOpen
	}

	existing, err := s.store.PaymentOrders.FindOpenByBooking(ctx, bookingID)
	if err == nil {
		return s.orderResponse(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	receipt := "rcpt_" + uuid.NewString()
	providerOrderID, err := s.provider.CreateOrder(ctx, b.AmountDue(), s.currency, receipt)
	if err != nil {
		return nil, err
	}

	order := &domain.PaymentOrder{
		BookingID:       bookingID,
		ProviderOrderID: providerOrderID,
		Receipt:         receipt,
		Amount:          b.AmountDue(),
		Currency:        s.currency,
		Status:          domain.OrderCreated,
	}
	if err := s.store.PaymentOrders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"order_id":   providerOrderID,
		"amount":     order.Amount,
	}).Info("payment order created")

	return s.orderResponse(order), nil
}

func (s *Service) orderResponse(o *domain.PaymentOrder) *CreateOrderResponse {
	return &CreateOrderResponse{
		OrderID:  o.ProviderOrderID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Receipt:  o.Receipt,
		KeyID:    s.keyID,
	}
}

// Verify confirms a completed payment. A valid signature commits the
// capacity the booking reserved (yoga seats, service slots) and records the
// coupon redemption in one transaction; an invalid one marks the payment
// failed and commits nothing.
func (s *Service) Verify(ctx context.Context, req *VerifyRequest) (*domain.Booking, error) {
	order, err := s.store.PaymentOrders.GetByProviderOrderID(ctx, req.OrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	b, err := s.store.Bookings.GetByID(ctx, order.BookingID)
	if err != nil {
		return nil, err
	}

	if order.Status == domain.OrderPaid {
		// Repeated verification of a settled order is a no-op.
		return b, nil
	}
	if order.Status == domain.OrderRefunded {
		return nil, ErrAlreadyRefunded
	}
	// A booking cancelled while the order was open (user cancel, expiry
	// sweep) stays cancelled; its dates may already belong to someone else.
	if b.Status != domain.BookingPending {
		return nil, ErrBookingNotOpen
	}

	if !s.provider.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		now := time.Now()
		order.Status = domain.OrderFailed
		order.ProviderPaymentID = req.PaymentID
		order.FailureReason = "signature mismatch"
		order.UpdatedAt = now
		if err := s.store.PaymentOrders.Update(ctx, order); err != nil {
			return nil, err
		}
		if err := s.store.Bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentFailed); err != nil {
			return nil, err
		}

		s.log.WithFields(logrus.Fields{
			"booking_id": b.ID,
			"order_id":   req.OrderID,
		}).Warn("payment signature verification failed")

		b.PaymentStatus = domain.PaymentFailed
		if s.notify != nil {
			go s.notify.PaymentFailed(context.WithoutCancel(ctx), b)
		}
		return nil, ErrInvalidSignature
	}

	now := time.Now()
	err = s.store.Transact(ctx, func(tx *repository.Store) error {
		order.Status = domain.OrderPaid
		order.ProviderPaymentID = req.PaymentID
		order.PaidAt = &now
		order.UpdatedAt = now
		if err := tx.PaymentOrders.Update(ctx, order); err != nil {
			return err
		}

		if err := tx.Bookings.MarkPaid(ctx, b.ID, req.PaymentID); err != nil {
			return err
		}
		if err := commitCapacity(ctx, tx, b); err != nil {
			return err
		}

		s.recordCouponUsage(ctx, tx, b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingConfirmed
	b.PaymentStatus = domain.PaymentPaid
	b.PaymentID = req.PaymentID

	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"order_id":   req.OrderID,
		"payment_id": req.PaymentID,
	}).Info("payment verified, booking confirmed")

	if s.notify != nil {
		go s.notify.BookingConfirmed(context.WithoutCancel(ctx), b)
	}
	return b, nil
}

// commitCapacity performs the irreversible decrements that were deferred
// until payment: yoga seats up by the group size, service slots down by the
// booked quantity.
func commitCapacity(ctx context.Context, tx *repository.Store, b *domain.Booking) error {
	if b.YogaRef != nil && b.YogaRef.Kind == domain.YogaRefScheduled {
		if err := tx.YogaSessions.AddBookedSeats(ctx, b.YogaRef.SessionID, b.TotalGuests); err != nil {
			return err
		}
	}
	for _, sel := range b.SelectedServices {
		if err := tx.Services.AdjustSlots(ctx, sel.ServiceID, -sel.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// recordCouponUsage writes the redemption record. Failures here are logged
// and swallowed; a missing ledger row must not undo a settled payment.
func (s *Service) recordCouponUsage(ctx context.Context, tx *repository.Store, b *domain.Booking) {
	if b.CouponCode == "" || s.coupons == nil {
		return
	}

	c, err := tx.Coupons.GetByCode(ctx, b.CouponCode)
	if err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("coupon lookup failed while recording usage")
		return
	}

	usage := &domain.CouponUsage{
		CouponID:   c.ID,
		UserID:     b.UserID,
		BookingID:  b.ID,
		OrderValue: b.TotalAmount,
		UsedAt:     time.Now(),
	}
	if b.CouponDiscount != nil {
		usage.DiscountAmount = *b.CouponDiscount
	}
	if b.PrimaryGuest != nil {
		usage.PhoneNumber = b.PrimaryGuest.Phone
		usage.Email = b.PrimaryGuest.Email
	}
	if usage.Email == "" {
		usage.Email = b.GuestEmail
	}

	if err := s.coupons.RecordUsage(ctx, tx, usage); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("failed to record coupon usage")
	}
}

// Status reports the booking's payment state and its most recent order, if
// any. Bookings without an order yet report their own payment status alone.
func (s *Service) Status(ctx context.Context, bookingID int64) (*StatusResponse, error) {
	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	resp := &StatusResponse{BookingID: b.ID, PaymentStatus: b.PaymentStatus}

	order, err := s.store.PaymentOrders.LatestByBooking(ctx, bookingID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		resp.Order = order
	}
	return resp, nil
}

// Fail records an explicit payment failure reported by the client.
func (s *Service) Fail(ctx context.Context, req *FailRequest) error {
	order, err := s.store.PaymentOrders.GetByProviderOrderID(ctx, req.OrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if order.Status == domain.OrderPaid {
		return ErrAlreadyPaid
	}

	order.Status = domain.OrderFailed
	order.FailureReason = req.Reason
	order.UpdatedAt = time.Now()
	if err := s.store.PaymentOrders.Update(ctx, order); err != nil {
		return err
	}
	return s.store.Bookings.UpdatePaymentStatus(ctx, order.BookingID, domain.PaymentFailed)
}

// Refund reverses a settled payment through the gateway and cancels the
// booking, releasing the capacity that payment committed. Partial amounts
// are allowed; nil refunds the full order. A booking the user already
// cancelled keeps its state; only the order moves.
func (s *Service) Refund(ctx context.Context, orderID string, amount *float64) (*domain.PaymentOrder, error) {
	order, err := s.store.PaymentOrders.GetByProviderOrderID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderRefunded {
		return nil, ErrAlreadyRefunded
	}
	if order.Status != domain.OrderPaid {
		return nil, ErrNotPaid
	}

	b, err := s.store.Bookings.GetByID(ctx, order.BookingID)
	if err != nil {
		return nil, err
	}

	refundAmount := order.Amount
	if amount != nil {
		refundAmount = *amount
	}

	refundID, err := s.provider.Refund(ctx, order.ProviderPaymentID, refundAmount)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.store.Transact(ctx, func(tx *repository.Store) error {
		order.Status = domain.OrderRefunded
		order.RefundID = refundID
		order.RefundAmount = &refundAmount
		order.UpdatedAt = now
		if err := tx.PaymentOrders.Update(ctx, order); err != nil {
			return err
		}

		if b.Status == domain.BookingCancelled {
			// Capacity was already released when the booking was cancelled.
			return tx.Bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentRefunded)
		}
		if err := releaseCapacity(ctx, tx, b); err != nil {
			return err
		}
		return tx.Bookings.Cancel(ctx, b.ID, now, domain.PaymentRefunded)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id":  orderID,
		"refund_id": refundID,
		"amount":    refundAmount,
	}).Info("payment refunded, booking cancelled")

	return order, nil
}

// releaseCapacity reverses commitCapacity for a paid booking being refunded.
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
