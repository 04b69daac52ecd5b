package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/farhanak624/kshetra-backend/internal/config"
	"github.com/farhanak624/kshetra-backend/internal/database"
	"github.com/farhanak624/kshetra-backend/internal/middleware"
	"github.com/farhanak624/kshetra-backend/internal/modules/auth"
	"github.com/farhanak624/kshetra-backend/internal/modules/booking"
	"github.com/farhanak624/kshetra-backend/internal/modules/catalog"
	"github.com/farhanak624/kshetra-backend/internal/modules/coupon"
	"github.com/farhanak624/kshetra-backend/internal/modules/payment"
	"github.com/farhanak624/kshetra-backend/internal/notification"
	jwtsvc "github.com/farhanak624/kshetra-backend/internal/pkg/jwt"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	store := repository.NewStore(db)
	if err := store.AutoMigrate(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	jwt := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.Expiration)
	notifier := notification.NewSender(cfg.Email, log)
	pricer := booking.Pricer{
		PickupFee:         cfg.Booking.PickupFee,
		DropFee:           cfg.Booking.DropFee,
		FallbackBreakfast: cfg.Booking.FallbackBreakfast,
	}

	couponSvc := coupon.NewService(store, log)
	bookingSvc := booking.NewService(store, couponSvc, pricer, notifier, log)
	authSvc := auth.NewService(store, jwt, log)
	catalogSvc := catalog.NewService(store, log)

	provider := payment.NewRazorpayProvider(cfg.Payment.KeyID, cfg.Payment.KeySecret)
	paymentSvc := payment.NewService(store, provider, couponSvc, notifier, log, cfg.Payment.KeyID, cfg.Payment.Currency)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	api := r.Group("/api/v1")
	private := r.Group("/api/v1", middleware.Auth(jwt))
	admin := r.Group("/api/v1/admin", middleware.Auth(jwt), middleware.AdminOnly())

	auth.NewHandler(authSvc).RegisterRoutes(api, private)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api, admin)
	booking.NewHandler(bookingSvc).RegisterRoutes(api, private)
	coupon.NewHandler(couponSvc).RegisterRoutes(api, admin)
	payment.NewHandler(paymentSvc).RegisterRoutes(api, admin)

	log.WithField("addr", cfg.Addr()).Info("starting server")
	if err := r.Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
