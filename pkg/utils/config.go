package utils

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Store    StoreConfig
	Catalog  CatalogConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StoreConfig selects where coupon ledgers are persisted.
type StoreConfig struct {
	Driver          string // postgres, redis or memory
	CouponNamespace string
}

type CatalogConfig struct {
	Source string // postgres or file
	File   string
}

type BookingConfig struct {
	DaysAhead          int
	TimeSlots          []string
	SessionIdleMinutes int
}

// UsesPostgres reports whether any component needs a database pool.
func (c *Config) UsesPostgres() bool {
	return c.Store.Driver == "postgres" || c.Catalog.Source == "postgres"
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "salon-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("COUPON_NAMESPACE", "haeyoom-coupons")
	viper.SetDefault("CATALOG_SOURCE", "postgres")
	viper.SetDefault("CATALOG_FILE", "configs/catalog.yaml")
	viper.SetDefault("BOOKING_DAYS_AHEAD", 7)
	viper.SetDefault("BOOKING_TIME_SLOTS", "09:00,10:00,11:00,12:00,13:00,14:00,15:00,16:00,17:00")
	viper.SetDefault("SESSION_IDLE_MINUTES", 60)

	// .env is optional, plain environment variables are enough
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Store: StoreConfig{
			Driver:          strings.ToLower(viper.GetString("STORE_DRIVER")),
			CouponNamespace: viper.GetString("COUPON_NAMESPACE"),
		},
		Catalog: CatalogConfig{
			Source: strings.ToLower(viper.GetString("CATALOG_SOURCE")),
			File:   viper.GetString("CATALOG_FILE"),
		},
		Booking: BookingConfig{
			DaysAhead:          viper.GetInt("BOOKING_DAYS_AHEAD"),
			TimeSlots:          SplitList(viper.GetString("BOOKING_TIME_SLOTS")),
			SessionIdleMinutes: viper.GetInt("SESSION_IDLE_MINUTES"),
		},
	}

	return config, nil
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file")
}
