package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"three full nights", date(2026, 10, 1), date(2026, 10, 4), 3},
		{"one night", date(2026, 10, 1), date(2026, 10, 2), 1},
		{"partial block rounds up", date(2026, 10, 1), date(2026, 10, 2).Add(6 * time.Hour), 2},
		{"same instant", date(2026, 10, 1), date(2026, 10, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestPayingGuests(t *testing.T) {
	guests := []domain.Guest{
		{Name: "A", Age: 30},
		{Name: "B", Age: 28},
		{Name: "C", Age: 7},
		{Name: "D", Age: 3},
	}
	assert.Equal(t, 3, PayingGuests(guests), "infant under 5 stays free")
}

func TestPriceRoomStayWithFood(t *testing.T) {
	p := Pricer{PickupFee: 1500, DropFee: 1500, FallbackBreakfast: 200}
	room := &domain.Room{PricePerNight: 2000, Capacity: 4}

	b := &domain.Booking{
		CheckIn:     date(2026, 10, 1),
		CheckOut:    date(2026, 10, 4),
		IncludeFood: true,
		Guests: []domain.Guest{
			{Name: "A", Age: 30},
			{Name: "B", Age: 28},
			{Name: "C", Age: 7},
			{Name: "D", Age: 3},
		},
	}

	p.Price(b, room, 0, 0)

	assert.Equal(t, 6000.0, b.RoomPrice)
	assert.Equal(t, 1350.0, b.FoodPrice, "150 x 3 paying guests x 3 nights")
	assert.Equal(t, 7350.0, b.TotalAmount)
	assert.Equal(t, 4, b.TotalGuests)
	assert.Equal(t, 3, b.Adults)
	assert.Equal(t, 1, b.Children)
}

func TestPriceBreakfastFallbackRate(t *testing.T) {
	p := Pricer{FallbackBreakfast: 200}
	room := &domain.Room{PricePerNight: 1000}

	b := &domain.Booking{
		CheckIn:          date(2026, 10, 1),
		CheckOut:         date(2026, 10, 3),
		IncludeBreakfast: true,
		Guests:           []domain.Guest{{Name: "A", Age: 30}, {Name: "B", Age: 25}},
	}

	p.Price(b, room, 0, 0)
	assert.Equal(t, 800.0, b.BreakfastPrice, "fallback 200 x 2 x 2 nights")

	b.BreakfastPrice = 0
	p.Price(b, room, 0, 250)
	assert.Equal(t, 1000.0, b.BreakfastPrice, "catalog rate 250 x 2 x 2 nights")
}

func TestPriceTransport(t *testing.T) {
	p := Pricer{PickupFee: 1500, DropFee: 1500}

	b := &domain.Booking{
		CheckIn:   date(2026, 10, 1),
		CheckOut:  date(2026, 10, 2),
		Guests:    []domain.Guest{{Name: "A", Age: 30}},
		Transport: &domain.Transport{Pickup: true, Drop: true},
	}

	p.Price(b, nil, 0, 0)
	assert.Equal(t, 3000.0, b.TransportPrice)

	b.Transport = &domain.Transport{Pickup: true}
	p.Price(b, nil, 0, 0)
	assert.Equal(t, 1500.0, b.TransportPrice)
}

func TestServiceLineTotal(t *testing.T) {
	tests := []struct {
		name   string
		unit   domain.PriceUnit
		price  float64
		qty    int
		guests int
		nights int
		want   float64
	}{
		{"per person", domain.PerPerson, 100, 2, 3, 4, 600},
		{"per day", domain.PerDay, 400, 1, 3, 4, 1600},
		{"per session", domain.PerSession, 1200, 2, 3, 4, 2400},
		{"flat rate", domain.FlatRate, 1500, 1, 3, 4, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &domain.Service{Price: tt.price, PriceUnit: tt.unit}
			assert.Equal(t, tt.want, ServiceLineTotal(svc, tt.qty, tt.guests, tt.nights))
		})
	}
}

func TestPriceSumsAllComponents(t *testing.T) {
	p := Pricer{PickupFee: 1500, DropFee: 1500, FallbackBreakfast: 200}
	room := &domain.Room{PricePerNight: 2000}

	b := &domain.Booking{
		CheckIn:          date(2026, 10, 1),
		CheckOut:         date(2026, 10, 3),
		IncludeFood:      true,
		IncludeBreakfast: true,
		Guests:           []domain.Guest{{Name: "A", Age: 30}},
		Transport:        &domain.Transport{Pickup: true},
		SelectedServices: []domain.SelectedService{{ServiceID: 1, Quantity: 1, TotalPrice: 1200}},
	}

	p.Price(b, room, 500, 0)

	want := b.RoomPrice + b.FoodPrice + b.BreakfastPrice + b.ServicesPrice + b.TransportPrice + b.YogaPrice
	assert.Equal(t, want, b.TotalAmount)
	assert.Equal(t, 500.0, b.YogaPrice)
	assert.Equal(t, 1200.0, b.ServicesPrice)
}

func TestPriceDeterministic(t *testing.T) {
	p := Pricer{PickupFee: 1500, DropFee: 1500, FallbackBreakfast: 200}
	room := &domain.Room{PricePerNight: 2000}

	build := func() *domain.Booking {
		return &domain.Booking{
			CheckIn:     date(2026, 10, 1),
			CheckOut:    date(2026, 10, 4),
			IncludeFood: true,
			Guests:      []domain.Guest{{Name: "A", Age: 30}, {Name: "B", Age: 7}},
			Transport:   &domain.Transport{Drop: true},
		}
	}

	a, b := build(), build()
	p.Price(a, room, 0, 0)
	p.Price(b, room, 0, 0)
	assert.Equal(t, a.TotalAmount, b.TotalAmount)
	assert.Equal(t, *a, *b)
}
