package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/farhanak624/kshetra-backend/internal/config"
	"github.com/farhanak624/kshetra-backend/internal/database"
	"github.com/farhanak624/kshetra-backend/internal/modules/booking"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

// One-shot sweeper for unpaid pending bookings, meant to run from cron.
// A pending booking blocks its room until paid; past the TTL it is
// cancelled so the dates open up again.
func main() {
	limit := flag.Int("limit", 200, "maximum bookings to expire per run")
	ttl := flag.Duration("ttl", 0, "override the configured pending TTL")
	flag.Parse()

	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	store := repository.NewStore(db)
	svc := booking.NewService(store, nil, booking.Pricer{}, nil, log)

	effectiveTTL := cfg.Booking.PendingTTL
	if *ttl > 0 {
		effectiveTTL = *ttl
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	expired, err := svc.ExpireStalePending(ctx, effectiveTTL, *limit)
	if err != nil {
		log.WithError(err).Fatal("expiry sweep failed")
	}

	log.WithFields(logrus.Fields{
		"expired": expired,
		"ttl":     effectiveTTL.String(),
	}).Info("expiry sweep complete")
}
