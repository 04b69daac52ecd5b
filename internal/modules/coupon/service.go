package coupon

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

// Service is the coupon ledger. It answers validity questions during
// booking, records redemptions on payment, and backs the admin CRUD.
type Service struct {
	store *repository.Store
	log   *logrus.Logger
}

func NewService(store *repository.Store, log *logrus.Logger) *Service {
	return &Service{store: store, log: log}
}

// Validate checks a code end to end and returns the coupon with the discount
// it yields for the order value. The identity (user ID or phone) feeds the
// at-most-once rule: one redemption per coupon per identity, ever.
func (s *Service) Validate(ctx context.Context, code string, orderValue float64, serviceType domain.ServiceType, userID *int64, phone string) (*domain.Coupon, float64, error) {
	c, err := s.store.Coupons.GetByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	switch {
	case !c.IsActive:
		return nil, 0, ErrInactive
	case now.Before(c.ValidFrom):
		return nil, 0, ErrNotYetValid
	case now.After(c.ValidUntil):
		return nil, 0, ErrExpired
	case c.UsageLimit != nil && c.CurrentUsageCount >= *c.UsageLimit:
		return nil, 0, ErrLimitReached
	}

	if !c.IsApplicableToService(serviceType) {
		return nil, 0, ErrNotApplicable
	}

	if userID == nil && phone == "" {
		return nil, 0, ErrIdentity
	}
	used, err := s.store.CouponUsages.Exists(ctx, c.ID, userID, phone)
	if err != nil {
		return nil, 0, err
	}
	if used {
		return nil, 0, ErrAlreadyUsed
	}

	if orderValue < c.MinOrderValue {
		return nil, 0, ErrMinOrderValue
	}

	return c, c.CalculateDiscount(orderValue), nil
}

// RecordUsage writes the redemption record for a paid booking. Duplicate
// records for the same identity are swallowed; the unique index keeps the
// ledger consistent either way.
func (s *Service) RecordUsage(ctx context.Context, tx *repository.Store, u *domain.CouponUsage) error {
	err := tx.CouponUsages.Create(ctx, u)
	if errors.Is(err, repository.ErrUsageExists) {
		s.log.WithFields(logrus.Fields{
			"coupon_id":  u.CouponID,
			"booking_id": u.BookingID,
		}).Warn("duplicate coupon usage record skipped")
		return nil
	}
	return err
}

func (s *Service) Create(ctx context.Context, createdBy int64, req *CreateCouponRequest) (*domain.Coupon, error) {
	c := req.toCoupon(createdBy)
	if err := s.store.Coupons.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Coupon, error) {
	c, err := s.store.Coupons.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, f repository.CouponFilter) ([]domain.Coupon, int64, error) {
	total, err := s.store.Coupons.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	coupons, err := s.store.Coupons.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateCouponRequest) (*domain.Coupon, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.DiscountValue != nil {
		c.DiscountValue = *req.DiscountValue
	}
	if req.ApplicableServices != nil {
		c.ApplicableServices = c.ApplicableServices[:0]
		for _, t := range *req.ApplicableServices {
			c.ApplicableServices = append(c.ApplicableServices, domain.ServiceType(t))
		}
	}
	if req.MinOrderValue != nil {
		c.MinOrderValue = *req.MinOrderValue
	}
	if req.MaxDiscount != nil {
		c.MaxDiscount = req.MaxDiscount
	}
	if req.ValidFrom != nil {
		c.ValidFrom = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		c.ValidUntil = *req.ValidUntil
	}
	if req.UsageLimit != nil {
		c.UsageLimit = req.UsageLimit
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.store.Coupons.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Coupons.Delete(ctx, id)
}

func (s *Service) Usages(ctx context.Context, couponID int64) ([]domain.CouponUsage, error) {
	if _, err := s.Get(ctx, couponID); err != nil {
		return nil, err
	}
	return s.store.CouponUsages.ListByCoupon(ctx, couponID)
}
