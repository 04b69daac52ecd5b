package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Email    EmailConfig    `mapstructure:"email"`
	Booking  BookingConfig  `mapstructure:"booking"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type PaymentConfig struct {
	KeyID     string `mapstructure:"key_id"`
	KeySecret string `mapstructure:"key_secret"`
	Currency  string `mapstructure:"currency"`
}

type EmailConfig struct {
	From    string `mapstructure:"from"`
	Enabled bool   `mapstructure:"enabled"`
}

type BookingConfig struct {
	// PendingTTL is how long an unpaid pending booking may block a room
	// before the expiry sweeper cancels it.
	PendingTTL        time.Duration `mapstructure:"pending_ttl"`
	PickupFee         float64       `mapstructure:"pickup_fee"`
	DropFee           float64       `mapstructure:"drop_fee"`
	FallbackBreakfast float64       `mapstructure:"fallback_breakfast"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.dsn", "kshetra.db")
	v.SetDefault("jwt.expiration", 24*time.Hour)
	v.SetDefault("payment.currency", "INR")
	v.SetDefault("email.from", "bookings@kshetra.com")
	v.SetDefault("email.enabled", false)
	v.SetDefault("booking.pending_ttl", 30*time.Minute)
	v.SetDefault("booking.pickup_fee", 1500.0)
	v.SetDefault("booking.drop_fee", 1500.0)
	v.SetDefault("booking.fallback_breakfast", 200.0)

	v.SetEnvPrefix("KSHETRA")
	v.AutomaticEnv()
	_ = v.BindEnv("database.dsn", "DATABASE_URL")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("payment.key_id", "RAZORPAY_KEY_ID")
	_ = v.BindEnv("payment.key_secret", "RAZORPAY_KEY_SECRET")

	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
