package booking

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
	"github.com/farhanak624/kshetra-backend/internal/modules/coupon"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)

	store := repository.NewStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func newTestService(t *testing.T) (*Service, *repository.Store) {
	t.Helper()

	store := newTestStore(t)
	log := logrus.New()
	ledger := coupon.NewService(store, log)
	pricer := Pricer{PickupFee: 1500, DropFee: 1500, FallbackBreakfast: 200}
	return NewService(store, ledger, pricer, nil, log), store
}

func seedRoom(t *testing.T, store *repository.Store, nightly float64, capacity int) *domain.Room {
	t.Helper()

	room := &domain.Room{
		RoomNumber:    fmt.Sprintf("R%d", time.Now().UnixNano()%100000),
		RoomType:      domain.RoomStandard,
		PricePerNight: nightly,
		Capacity:      capacity,
		IsAvailable:   true,
	}
	require.NoError(t, store.Rooms.Create(context.Background(), room))
	return room
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(dateLayout)
}

func roomRequest(roomID int64) *CreateBookingRequest {
	return &CreateBookingRequest{
		BookingType: "room",
		RoomID:      &roomID,
		CheckIn:     futureDate(10),
		CheckOut:    futureDate(13),
		Guests: []GuestRequest{
			{Name: "Asha", Age: 30},
			{Name: "Dev", Age: 28},
		},
		PrimaryGuest: &PrimaryGuestRequest{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"},
	}
}

func TestCreateRoomBooking(t *testing.T) {
	svc, store := newTestService(t)
	room := seedRoom(t, store, 2000, 4)
	ctx := context.Background()

	req := roomRequest(room.ID)
	req.IncludeFood = true
	req.Guests = append(req.Guests,
		GuestRequest{Name: "Kiran", Age: 7},
		GuestRequest{Name: "Anu", Age: 3},
	)

	userID := int64(1)
	b, err := svc.Create(ctx, &userID, req)
	require.NoError(t, err)

	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, 6000.0, b.RoomPrice)
	assert.Equal(t, 1350.0, b.FoodPrice)
	assert.Equal(t, 7350.0, b.TotalAmount)

	stored, err := store.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.TotalAmount, stored.TotalAmount)
	assert.Len(t, stored.Guests, 4)
}

func TestCreateRejectsOverlap(t *testing.T) {
	svc, store := newTestService(t)
	room := seedRoom(t, store, 2000, 4)
	ctx := context.Background()

	userID := int64(1)
	_, err := svc.Create(ctx, &userID, roomRequest(room.ID))
	require.NoError(t, err)

	// Same room, range intersecting by one night.
	second := roomRequest(room.ID)
	second.CheckIn = futureDate(12)
	second.CheckOut = futureDate(15)
	_, err = svc.Create(ctx, &userID, second)
	assert.ErrorIs(t, err, ErrRoomConflict)

	// Back to back is fine: checkout day equals the next check-in.
	third := roomRequest(room.ID)
	third.CheckIn = futureDate(13)
	third.CheckOut = futureDate(15)
	_, err = svc.Create(ctx, &userID, third)
	assert.NoError(t, err)
}

func TestCreateCancelledBookingFreesDates(t *testing.T) {
	svc, store := newTestService(t)
	room := seedRoom(t, store, 2000, 4)
	ctx := context.Background()

	userID := int64(1)
	first, err := svc.Create(ctx, &userID, roomRequest(room.ID))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, &userID, roomRequest(room.ID))
	assert.NoError(t, err)
}

func TestCreateGuestBookingRequiresContact(t *testing.T) {
	svc, store := newTestService(t)
	room := seedRoom(t, store, 2000, 4)
	ctx := context.Background()

	req := roomRequest(room.ID)
	req.PrimaryGuest = nil
	req.GuestEmail = ""
	_, err := svc.Create(ctx, nil, req)
	assert.ErrorIs(t, err, ErrBookerMissing)

	req = roomRequest(room.ID)
	b, err := svc.Create(ctx, nil, req)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", b.GuestEmail)
	assert.Nil(t, b.UserID)
}

func TestCreateRejectsOverCapacity(t *testing.T) {
	svc, store := newTestService(t)
	room := seedRoom(t, store, 2000, 2)
	ctx := context.Background()

	req := roomRequest(room.ID)
	req.Guests = append(req.Guests, GuestRequest{Name: "Extra", Age: 25})

	userID := int64(1)
	_, err := svc.Create(ctx, &userID, req)

	var capErr *CapacityError
	assert.ErrorAs(t, err, &capErr)
}

func TestCreateYogaBookingValidatesSeats(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	session := &domain.YogaSession{
		Type:        domain.Yoga200Hr,
		BatchName:   "Autumn batch",
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 2, 0),
		Capacity:    15,
		BookedSeats: 14,
		Price:       45000,
		IsActive:    true,
	}
	require.NoError(t, store.YogaSessions.Create(ctx, session))

	req := &CreateBookingRequest{
		BookingType:   "yoga",
		CheckIn:       futureDate(10),
		CheckOut:      futureDate(13),
		Guests:        []GuestRequest{{Name: "Asha", Age: 30}, {Name: "Dev", Age: 28}},
		PrimaryGuest:  &PrimaryGuestRequest{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"},
		YogaSessionID: &session.ID,
	}

	userID := int64(1)
	_, err := svc.Create(ctx, &userID, req)

	var seatsErr *SeatsError
	require.ErrorAs(t, err, &seatsErr)
	assert.Equal(t, 1, seatsErr.Available)
	assert.Equal(t, 2, seatsErr.Required)

	// Validation alone must not move the counter.
	after, err := store.YogaSessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, after.BookedSeats)
}

func TestCreateDoesNotCommitSeats(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	session := &domain.YogaSession{
		Type:      domain.Yoga200Hr,
		BatchName: "Autumn batch",
		StartDate: time.Now().AddDate(0, 1, 0),
		EndDate:   time.Now().AddDate(0, 2, 0),
		Capacity:  15,
		Price:     45000,
		IsActive:  true,
	}
	require.NoError(t, store.YogaSessions.Create(ctx, session))

	req := &CreateBookingRequest{
		BookingType:   "yoga",
		CheckIn:       futureDate(10),
		CheckOut:      futureDate(13),
		Guests:        []GuestRequest{{Name: "Asha", Age: 30}},
		PrimaryGuest:  &PrimaryGuestRequest{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"},
		YogaSessionID: &session.ID,
	}

	userID := int64(1)
	b, err := svc.Create(ctx, &userID, req)
	require.NoError(t, err)
	assert.Equal(t, 45000.0, b.YogaPrice)

	after, err := store.YogaSessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.BookedSeats, "seats commit only on payment")
}

func TestCancelPaidYogaBookingReleasesSeats(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	session := &domain.YogaSession{
		Type:        domain.Yoga200Hr,
		BatchName:   "Autumn batch",
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 2, 0),
		Capacity:    20,
		BookedSeats: 7,
		Price:       45000,
		IsActive:    true,
	}
	require.NoError(t, store.YogaSessions.Create(ctx, session))

	req := &CreateBookingRequest{
		BookingType: "yoga",
		CheckIn:     futureDate(10),
		CheckOut:    futureDate(13),
		Guests: []GuestRequest{
			{Name: "Asha", Age: 30},
			{Name: "Dev", Age: 28},
			{Name: "Mira", Age: 26},
		},
		PrimaryGuest:  &PrimaryGuestRequest{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"},
		YogaSessionID: &session.ID,
	}

	userID := int64(1)
	b, err := svc.Create(ctx, &userID, req)
	require.NoError(t, err)

	// Simulate the payment commit: booking paid, seats taken.
	require.NoError(t, store.Bookings.MarkPaid(ctx, b.ID, "pay_test"))
	require.NoError(t, store.YogaSessions.AddBookedSeats(ctx, session.ID, 3))

	mid, err := store.YogaSessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, 10, mid.BookedSeats)

	cancelled, err := svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	assert.Equal(t, domain.PaymentRefunded, cancelled.PaymentStatus)

	after, err := store.YogaSessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.BookedSeats)
}

func TestCancelUnpaidReleasesNothing(t *testing.T) {
	svc, store := newTestService(t)
	room := seedRoom(t, store, 2000, 4)
	ctx := context.Background()

	userID := int64(1)
	b, err := svc.Create(ctx, &userID, roomRequest(room.ID))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	assert.Equal(t, domain.PaymentPending, cancelled.PaymentStatus)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = svc.Cancel(ctx, b.ID)
	assert.ErrorIs(t, err, ErrCancelNotAllowed)
}

func TestCreateAppliesCoupon(t *testing.T) {
	svc, store := newTestService(t)
	room := seedRoom(t, store, 2000, 4)
	ctx := context.Background()

	maxDiscount := 500.0
	limit := 10
	c := &domain.Coupon{
		Code:          "SAVE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		MaxDiscount:   &maxDiscount,
		ValidFrom:     time.Now().AddDate(0, -1, 0),
		ValidUntil:    time.Now().AddDate(0, 1, 0),
		UsageLimit:    &limit,
		IsActive:      true,
	}
	require.NoError(t, store.Coupons.Create(ctx, c))

	req := roomRequest(room.ID)
	req.Transport = &TransportRequest{Pickup: true, Drop: true}
	req.CouponCode = "SAVE10"

	userID := int64(1)
	b, err := svc.Create(ctx, &userID, req)
	require.NoError(t, err)

	// 6000 room + 3000 transport, 10% capped at 500.
	assert.Equal(t, 9000.0, b.TotalAmount)
	require.NotNil(t, b.CouponDiscount)
	assert.Equal(t, 500.0, *b.CouponDiscount)
	require.NotNil(t, b.FinalAmount)
	assert.Equal(t, 8500.0, *b.FinalAmount)
	assert.Equal(t, 8500.0, b.AmountDue())

	after, err := store.Coupons.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CurrentUsageCount)
}

func TestCreateRejectsInvalidCoupon(t *testing.T) {
	svc, store := newTestService(t)
	room := seedRoom(t, store, 2000, 4)
	ctx := context.Background()

	req := roomRequest(room.ID)
	req.CouponCode = "NOSUCH"

	userID := int64(1)
	_, err := svc.Create(ctx, &userID, req)
	assert.ErrorIs(t, err, coupon.ErrNotFound)
}

func TestExpireStalePending(t *testing.T) {
	svc, store := newTestService(t)
	room := seedRoom(t, store, 2000, 4)
	ctx := context.Background()

	userID := int64(1)
	b, err := svc.Create(ctx, &userID, roomRequest(room.ID))
	require.NoError(t, err)

	// Fresh pending booking is untouched.
	expired, err := svc.ExpireStalePending(ctx, 30*time.Minute, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)

	// Sweep with zero TTL treats it as stale.
	expired, err = svc.ExpireStalePending(ctx, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	after, err := store.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, after.Status)
}
