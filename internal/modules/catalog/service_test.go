package catalog

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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailableRoomsExcludesBookedAndSmallRooms(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	small := &domain.Room{RoomNumber: "101", RoomType: domain.RoomStandard, PricePerNight: 2000, Capacity: 2, IsAvailable: true}
	large := &domain.Room{RoomNumber: "C1", RoomType: domain.RoomCottage, PricePerNight: 5000, Capacity: 4, IsAvailable: true}
	offline := &domain.Room{RoomNumber: "102", RoomType: domain.RoomStandard, PricePerNight: 2000, Capacity: 4, IsAvailable: false}
	for _, r := range []*domain.Room{small, large, offline} {
		require.NoError(t, store.Rooms.Create(ctx, r))
	}

	// The cottage is taken for part of the window.
	userID := int64(1)
	b := &domain.Booking{
		UserID:        &userID,
		BookingType:   domain.BookingTypeRoom,
		RoomID:        &large.ID,
		CheckIn:       date(2027, 3, 11),
		CheckOut:      date(2027, 3, 13),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
	require.NoError(t, store.Bookings.Create(ctx, b))

	rooms, err := svc.AvailableRooms(ctx, date(2027, 3, 10), date(2027, 3, 13), 0)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "101", rooms[0].Room.RoomNumber)
	assert.Equal(t, 3, rooms[0].Nights)
	assert.Equal(t, 6000.0, rooms[0].Total)

	// Once the group is too big for the standard room nothing is left.
	rooms, err = svc.AvailableRooms(ctx, date(2027, 3, 10), date(2027, 3, 13), 3)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	// Outside the booked window the cottage is back.
	rooms, err = svc.AvailableRooms(ctx, date(2027, 3, 13), date(2027, 3, 15), 3)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "C1", rooms[0].Room.RoomNumber)
}

func TestAvailableRoomsRejectsBadRange(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AvailableRooms(context.Background(), date(2027, 3, 13), date(2027, 3, 10), 0)
	assert.ErrorIs(t, err, ErrInvalidDates)
}

func TestRoomCRUD(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRoom(ctx, &CreateRoomRequest{
		RoomNumber:    "201",
		RoomType:      "deluxe",
		PricePerNight: 3500,
		Capacity:      3,
		Amenities:     []string{"wifi", "ac"},
	})
	require.NoError(t, err)
	assert.True(t, created.IsAvailable)

	_, err = svc.CreateRoom(ctx, &CreateRoomRequest{
		RoomNumber:    "201",
		RoomType:      "deluxe",
		PricePerNight: 3500,
		Capacity:      3,
	})
	assert.ErrorIs(t, err, ErrRoomNumberTaken)

	newPrice := 4000.0
	unavailable := false
	updated, err := svc.UpdateRoom(ctx, created.ID, &UpdateRoomRequest{
		PricePerNight: &newPrice,
		IsAvailable:   &unavailable,
	})
	require.NoError(t, err)
	assert.Equal(t, 4000.0, updated.PricePerNight)
	assert.False(t, updated.IsAvailable)

	_, err = svc.GetRoom(ctx, 999)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSessionCRUD(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	start := time.Now().AddDate(0, 1, 0)
	created, err := svc.CreateSession(ctx, &CreateSessionRequest{
		Type:      "200hr",
		BatchName: "Autumn batch",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 28),
		Capacity:  20,
		Price:     45000,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = svc.CreateSession(ctx, &CreateSessionRequest{
		Type:      "200hr",
		BatchName: "Backwards batch",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -1),
		Capacity:  20,
		Price:     45000,
	})
	assert.ErrorIs(t, err, ErrSessionDates)

	got, err := svc.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.AvailableSeats)

	sessions, err := svc.ListSessions(ctx, true)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Autumn batch", sessions[0].BatchName)
}

func TestServiceCatalog(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	slots := 6
	created, err := svc.CreateService(ctx, &CreateServiceRequest{
		Name:           "Backwater Kayaking",
		Category:       "adventure",
		Price:          1200,
		PriceUnit:      "per_session",
		AvailableSlots: &slots,
	})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateService(ctx, created.ID, &UpdateServiceRequest{IsActive: &inactive})
	require.NoError(t, err)

	active, err := svc.ListServices(ctx, domain.ServiceAdventure, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListServices(ctx, domain.ServiceAdventure, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
