package notification

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/farhanak624/kshetra-backend/internal/config"
	"github.com/farhanak624/kshetra-backend/internal/domain"
)

// Sender delivers booking lifecycle messages to the guest's email. It is
// called fire-and-forget: errors are logged, never returned, and a failed
// delivery has no effect on the booking it describes.
type Sender struct {
	cfg config.EmailConfig
	log *logrus.Logger
}

func NewSender(cfg config.EmailConfig, log *logrus.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

func (s *Sender) BookingCreated(ctx context.Context, b *domain.Booking) {
	s.deliver(ctx, b, "booking_created",
		fmt.Sprintf("Your booking #%d is reserved. Amount due: %.2f", b.ID, b.AmountDue()))
}

func (s *Sender) BookingConfirmed(ctx context.Context, b *domain.Booking) {
	s.deliver(ctx, b, "booking_confirmed",
		fmt.Sprintf("Your booking #%d is confirmed. See you on %s!", b.ID, b.CheckIn.Format("02 Jan 2006")))
}

func (s *Sender) BookingCancelled(ctx context.Context, b *domain.Booking) {
	s.deliver(ctx, b, "booking_cancelled",
		fmt.Sprintf("Your booking #%d has been cancelled.", b.ID))
}

func (s *Sender) PaymentFailed(ctx context.Context, b *domain.Booking) {
	s.deliver(ctx, b, "payment_failed",
		fmt.Sprintf("Payment for booking #%d failed. You can retry from your bookings page.", b.ID))
}

func (s *Sender) deliver(ctx context.Context, b *domain.Booking, kind, body string) {
	to := recipient(b)
	entry := s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"kind":       kind,
		"to":         to,
	})

	if to == "" {
		entry.Warn("no recipient for notification")
		return
	}
	if !s.cfg.Enabled {
		entry.Debug("email delivery disabled, notification logged only")
		return
	}

	entry.WithField("from", s.cfg.From).Info(body)
}

func recipient(b *domain.Booking) string {
	if b.PrimaryGuest != nil && b.PrimaryGuest.Email != "" {
		return b.PrimaryGuest.Email
	}
	return b.GuestEmail
}
