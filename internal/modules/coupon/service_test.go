package coupon

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanak624/kshetra-backend/internal/database"
	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

func newTestService(t *testing.T) (*Service, *repository.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)

	store := repository.NewStore(db)
	require.NoError(t, store.AutoMigrate())
	return NewService(store, logrus.New()), store
}

func seedCoupon(t *testing.T, store *repository.Store, mutate func(*domain.Coupon)) *domain.Coupon {
	t.Helper()

	c := &domain.Coupon{
		Code:          "SAVE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		ValidFrom:     time.Now().AddDate(0, -1, 0),
		ValidUntil:    time.Now().AddDate(0, 1, 0),
		IsActive:      true,
	}
	if mutate != nil {
		mutate(c)
	}
	require.NoError(t, store.Coupons.Create(context.Background(), c))
	return c
}

func TestValidateHappyPath(t *testing.T) {
	svc, store := newTestService(t)
	seedCoupon(t, store, nil)

	userID := int64(1)
	c, discount, err := svc.Validate(context.Background(), "SAVE10", 3000, "", &userID, "")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", c.Code)
	assert.Equal(t, 300.0, discount)
}

func TestValidateIsCaseInsensitiveOnCode(t *testing.T) {
	svc, store := newTestService(t)
	seedCoupon(t, store, nil)

	userID := int64(1)
	_, _, err := svc.Validate(context.Background(), "save10", 3000, "", &userID, "")
	assert.NoError(t, err)
}

func TestValidateRejections(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)

	t.Run("unknown code", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, _, err := svc.Validate(ctx, "NOSUCH", 3000, "", &userID, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		svc, store := newTestService(t)
		seedCoupon(t, store, func(c *domain.Coupon) { c.IsActive = false })
		_, _, err := svc.Validate(ctx, "SAVE10", 3000, "", &userID, "")
		assert.ErrorIs(t, err, ErrInactive)
	})

	t.Run("not yet valid", func(t *testing.T) {
		svc, store := newTestService(t)
		seedCoupon(t, store, func(c *domain.Coupon) { c.ValidFrom = time.Now().AddDate(0, 0, 1) })
		_, _, err := svc.Validate(ctx, "SAVE10", 3000, "", &userID, "")
		assert.ErrorIs(t, err, ErrNotYetValid)
	})

	t.Run("expired", func(t *testing.T) {
		svc, store := newTestService(t)
		seedCoupon(t, store, func(c *domain.Coupon) { c.ValidUntil = time.Now().AddDate(0, 0, -1) })
		_, _, err := svc.Validate(ctx, "SAVE10", 3000, "", &userID, "")
		assert.ErrorIs(t, err, ErrExpired)
	})

	t.Run("usage limit reached", func(t *testing.T) {
		svc, store := newTestService(t)
		limit := 2
		seedCoupon(t, store, func(c *domain.Coupon) {
			c.UsageLimit = &limit
			c.CurrentUsageCount = 2
		})
		_, _, err := svc.Validate(ctx, "SAVE10", 3000, "", &userID, "")
		assert.ErrorIs(t, err, ErrLimitReached)
	})

	t.Run("wrong service type", func(t *testing.T) {
		svc, store := newTestService(t)
		seedCoupon(t, store, func(c *domain.Coupon) {
			c.ApplicableServices = []domain.ServiceType{domain.ServiceTypeYoga}
		})
		_, _, err := svc.Validate(ctx, "SAVE10", 3000, domain.ServiceTypeAirport, &userID, "")
		assert.ErrorIs(t, err, ErrNotApplicable)
	})

	t.Run("below minimum order value", func(t *testing.T) {
		svc, store := newTestService(t)
		seedCoupon(t, store, func(c *domain.Coupon) { c.MinOrderValue = 5000 })
		_, _, err := svc.Validate(ctx, "SAVE10", 3000, "", &userID, "")
		assert.ErrorIs(t, err, ErrMinOrderValue)
	})

	t.Run("no identity", func(t *testing.T) {
		svc, store := newTestService(t)
		seedCoupon(t, store, nil)
		_, _, err := svc.Validate(ctx, "SAVE10", 3000, "", nil, "")
		assert.ErrorIs(t, err, ErrIdentity)
	})
}

func TestValidateBlocksReuseAcrossChannels(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := seedCoupon(t, store, nil)

	userID := int64(1)
	usage := &domain.CouponUsage{
		CouponID:       c.ID,
		UserID:         &userID,
		PhoneNumber:    "9876543210",
		BookingID:      42,
		DiscountAmount: 300,
		OrderValue:     3000,
		UsedAt:         time.Now(),
	}
	require.NoError(t, store.CouponUsages.Create(ctx, usage))

	// Same user again.
	_, _, err := svc.Validate(ctx, "SAVE10", 3000, "", &userID, "")
	assert.ErrorIs(t, err, ErrAlreadyUsed)

	// Same phone through the guest channel, no account.
	_, _, err = svc.Validate(ctx, "SAVE10", 3000, "", nil, "9876543210")
	assert.ErrorIs(t, err, ErrAlreadyUsed)

	// A different identity is fine.
	otherID := int64(2)
	_, _, err = svc.Validate(ctx, "SAVE10", 3000, "", &otherID, "1112223334")
	assert.NoError(t, err)
}

func TestRecordUsageSwallowsDuplicates(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := seedCoupon(t, store, nil)

	userID := int64(1)
	build := func(bookingID int64) *domain.CouponUsage {
		return &domain.CouponUsage{
			CouponID:  c.ID,
			UserID:    &userID,
			BookingID: bookingID,
			UsedAt:    time.Now(),
		}
	}

	require.NoError(t, svc.RecordUsage(ctx, store, build(1)))
	require.NoError(t, svc.RecordUsage(ctx, store, build(2)), "duplicate is logged, not surfaced")

	usages, err := store.CouponUsages.ListByCoupon(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, usages, 1)
}

func TestIncrementUsageGuard(t *testing.T) {
	_, store := newTestService(t)
	ctx := context.Background()

	limit := 2
	c := seedCoupon(t, store, func(c *domain.Coupon) { c.UsageLimit = &limit })

	require.NoError(t, store.Coupons.IncrementUsage(ctx, c.ID))
	require.NoError(t, store.Coupons.IncrementUsage(ctx, c.ID))
	assert.ErrorIs(t, store.Coupons.IncrementUsage(ctx, c.ID), repository.ErrUsageLimitReached)

	after, err := store.Coupons.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.CurrentUsageCount)
}

func TestAdminCRUD(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	maxDiscount := 500.0
	req := &CreateCouponRequest{
		Code:          "WELCOME10",
		DiscountType:  "percentage",
		DiscountValue: 10,
		MaxDiscount:   &maxDiscount,
		ValidFrom:     time.Now(),
		ValidUntil:    time.Now().AddDate(1, 0, 0),
	}

	created, err := svc.Create(ctx, 1, req)
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, int64(1), created.CreatedBy)

	_, err = svc.Create(ctx, 1, req)
	assert.ErrorIs(t, err, ErrCodeTaken)

	inactive := false
	updated, err := svc.Update(ctx, created.ID, &UpdateCouponRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	coupons, total, err := svc.List(ctx, repository.CouponFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, coupons, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
