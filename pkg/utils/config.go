package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Booking   BookingConfig
	Session   SessionConfig
	Email     EmailConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MaxConns       int32
	MigrationsPath string
}

// BookingConfig holds the slot grid and the shared capacity pool.
// Slots are hourly labels from OpenHour to CloseHour inclusive.
type BookingConfig struct {
	SlotCapacity int
	OpenHour     int
	CloseHour    int
}

type SessionConfig struct {
	CookieName  string
	ExpiryHours int
	Secure      bool
}

type EmailConfig struct {
	WorkerURL      string
	From           string
	TimeoutSeconds int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	Requests      int
	WindowSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATIONS_PATH", "migrations")
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SLOT_CAPACITY", 5)
	viper.SetDefault("OPEN_HOUR", 9)
	viper.SetDefault("CLOSE_HOUR", 20)
	viper.SetDefault("SESSION_COOKIE_NAME", "admin-session")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_SECURE", false)
	viper.SetDefault("EMAIL_TIMEOUT_SECONDS", 5)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional when everything comes from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
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
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			Name:           viper.GetString("DB_NAME"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASS"),
			MaxConns:       viper.GetInt32("DB_MAX_CONNS"),
			MigrationsPath: viper.GetString("DB_MIGRATIONS_PATH"),
		},
		Booking: BookingConfig{
			SlotCapacity: viper.GetInt("SLOT_CAPACITY"),
			OpenHour:     viper.GetInt("OPEN_HOUR"),
			CloseHour:    viper.GetInt("CLOSE_HOUR"),
		},
		Session: SessionConfig{
			CookieName:  viper.GetString("SESSION_COOKIE_NAME"),
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
			Secure:      viper.GetBool("SESSION_SECURE"),
		},
		Email: EmailConfig{
			WorkerURL:      viper.GetString("EMAIL_WORKER_URL"),
			From:           viper.GetString("EMAIL_FROM"),
			TimeoutSeconds: viper.GetInt("EMAIL_TIMEOUT_SECONDS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			Requests:      viper.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	return config, nil
}
