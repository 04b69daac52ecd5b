package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farhanak624/kshetra-backend/internal/config"
	"github.com/farhanak624/kshetra-backend/internal/database"
	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	store := repository.NewStore(db)
	if err := store.AutoMigrate(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	ctx := context.Background()
	seedAdmin(ctx, store, log)
	seedRooms(ctx, store, log)
	seedServices(ctx, store, log)
	seedSessions(ctx, store, log)
	seedCoupons(ctx, store, log)

	log.Info("seed complete")
}

// seedAdmin creates the admin account when it does not exist yet. The
// password comes from SEED_ADMIN_PASSWORD so nothing sensitive lives in
// the source tree.
func seedAdmin(ctx context.Context, store *repository.Store, log *logrus.Logger) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	if _, err := store.Users.GetByEmail(ctx, email); err == nil {
		log.WithField("email", email).Info("admin already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash admin password")
	}

	admin := &domain.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := store.Users.Create(ctx, admin); err != nil {
		log.WithError(err).Fatal("failed to create admin")
	}
	log.WithField("email", email).Info("admin created")
}

func seedRooms(ctx context.Context, store *repository.Store, log *logrus.Logger) {
	existing, err := store.Rooms.List(ctx, false)
	if err != nil {
		log.WithError(err).Fatal("failed to list rooms")
	}
	if len(existing) > 0 {
		return
	}

	rooms := []domain.Room{
		{RoomNumber: "101", RoomType: domain.RoomStandard, PricePerNight: 2000, Capacity: 2, Amenities: []string{"wifi", "fan"}, IsAvailable: true},
		{RoomNumber: "102", RoomType: domain.RoomStandard, PricePerNight: 2000, Capacity: 2, Amenities: []string{"wifi", "fan"}, IsAvailable: true},
		{RoomNumber: "201", RoomType: domain.RoomDeluxe, PricePerNight: 3500, Capacity: 3, Amenities: []string{"wifi", "ac", "balcony"}, IsAvailable: true},
		{RoomNumber: "C1", RoomType: domain.RoomCottage, PricePerNight: 5000, Capacity: 4, Amenities: []string{"wifi", "ac", "garden"}, IsAvailable: true},
		{RoomNumber: "D1", RoomType: domain.RoomDormitory, PricePerNight: 800, Capacity: 8, Amenities: []string{"wifi", "shared bathroom"}, IsAvailable: true},
	}
	for i := range rooms {
		if err := store.Rooms.Create(ctx, &rooms[i]); err != nil {
			log.WithError(err).WithField("room", rooms[i].RoomNumber).Fatal("failed to seed room")
		}
	}
	log.WithField("count", len(rooms)).Info("rooms seeded")
}

func seedServices(ctx context.Context, store *repository.Store, log *logrus.Logger) {
	existing, err := store.Services.List(ctx, "", false)
	if err != nil {
		log.WithError(err).Fatal("failed to list services")
	}
	if len(existing) > 0 {
		return
	}

	kayakSlots := 6
	minKayakAge := 12
	services := []domain.Service{
		{Name: "Breakfast", Category: domain.ServiceFood, Subcategory: "breakfast", Price: 200, PriceUnit: domain.PerPerson, IsActive: true},
		{Name: "Airport Pickup", Category: domain.ServiceTransport, Subcategory: "pickup", Price: 1500, PriceUnit: domain.FlatRate, IsActive: true},
		{Name: "Airport Drop", Category: domain.ServiceTransport, Subcategory: "drop", Price: 1500, PriceUnit: domain.FlatRate, IsActive: true},
		{Name: "Morning Hatha Drop-in", Category: domain.ServiceYoga, Subcategory: "morning-hatha", Price: 500, PriceUnit: domain.PerSession, IsActive: true},
		{Name: "Evening Vinyasa Drop-in", Category: domain.ServiceYoga, Subcategory: "evening-vinyasa", Price: 500, PriceUnit: domain.PerSession, IsActive: true},
		{Name: "Scooter Rental", Category: domain.ServiceAddon, Subcategory: "rental", Price: 400, PriceUnit: domain.PerDay, IsActive: true},
		{Name: "Backwater Kayaking", Category: domain.ServiceAdventure, Price: 1200, PriceUnit: domain.PerSession, AvailableSlots: &kayakSlots, AgeRestriction: &domain.AgeRestriction{MinAge: &minKayakAge}, IsActive: true},
	}
	for i := range services {
		if err := store.Services.Create(ctx, &services[i]); err != nil {
			log.WithError(err).WithField("service", services[i].Name).Fatal("failed to seed service")
		}
	}
	log.WithField("count", len(services)).Info("services seeded")
}

func seedSessions(ctx context.Context, store *repository.Store, log *logrus.Logger) {
	existing, err := store.YogaSessions.List(ctx, false)
	if err != nil {
		log.WithError(err).Fatal("failed to list yoga sessions")
	}
	if len(existing) > 0 {
		return
	}

	start := time.Now().AddDate(0, 1, 0)
	sessions := []domain.YogaSession{
		{Type: domain.Yoga200Hr, BatchName: "200hr TTC", StartDate: start, EndDate: start.AddDate(0, 0, 28), Capacity: 20, Price: 45000, Instructor: "Asha", IsActive: true},
		{Type: domain.Yoga300Hr, BatchName: "300hr TTC", StartDate: start.AddDate(0, 1, 0), EndDate: start.AddDate(0, 2, 12), Capacity: 15, Price: 65000, Instructor: "Ravi", IsActive: true},
	}
	for i := range sessions {
		if err := store.YogaSessions.Create(ctx, &sessions[i]); err != nil {
			log.WithError(err).WithField("batch", sessions[i].BatchName).Fatal("failed to seed yoga session")
		}
	}
	log.WithField("count", len(sessions)).Info("yoga sessions seeded")
}

func seedCoupons(ctx context.Context, store *repository.Store, log *logrus.Logger) {
	if _, err := store.Coupons.GetByCode(ctx, "WELCOME10"); err == nil {
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Fatal("failed to check coupons")
	}

	maxDiscount := 500.0
	limit := 100
	welcome := &domain.Coupon{
		Code:          "WELCOME10",
		Description:   "10% off your first booking",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		MinOrderValue: 2000,
		MaxDiscount:   &maxDiscount,
		ValidFrom:     time.Now(),
		ValidUntil:    time.Now().AddDate(1, 0, 0),
		UsageLimit:    &limit,
		IsActive:      true,
	}
	if err := store.Coupons.Create(ctx, welcome); err != nil {
		log.WithError(err).Fatal("failed to seed coupon")
	}
	log.WithField("code", welcome.Code).Info("coupon seeded")
}
