package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	Server   ServerConfig
	CORS     CORSConfig
	Booking  BookingConfig
	Hashids  HashidsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type JWTConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type ServerConfig struct {
	Port    string
	GinMode string
	Env     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// BookingConfig holds the reservation policy. The reference policy is a
// 09:00-19:00 day on a 30 minute grid, a 3 hour same-day lead time and a
// 15 day booking window. Process-wide, not per hospital.
type BookingConfig struct {
	OpenTime     string
	CloseTime    string
	SlotInterval time.Duration
	LeadTime     time.Duration
	WindowDays   int
}

type HashidsConfig struct {
	Salt      string
	MinLength int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "clinic_reservation"),
		},
		JWT: JWTConfig{
			AccessSecret:       getEnv("JWT_ACCESS_SECRET", "your-access-secret-key"),
			RefreshSecret:      getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("ACCESS_TOKEN_EXPIRY", "10h"), 10*time.Hour),
			RefreshTokenExpiry: parseDuration(getEnv("REFRESH_TOKEN_EXPIRY", "168h"), 168*time.Hour),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
			Env:     getEnv("APP_ENV", "development"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Booking: BookingConfig{
			OpenTime:     getEnv("BOOKING_OPEN_TIME", "09:00"),
			CloseTime:    getEnv("BOOKING_CLOSE_TIME", "19:00"),
			SlotInterval: parseDuration(getEnv("BOOKING_SLOT_INTERVAL", "30m"), 30*time.Minute),
			LeadTime:     parseDuration(getEnv("BOOKING_LEAD_TIME", "3h"), 3*time.Hour),
			WindowDays:   parseInt(getEnv("BOOKING_WINDOW_DAYS", "15"), 15),
		},
		Hashids: HashidsConfig{
			Salt:      getEnv("HASHIDS_SALT", "clinic-reservation-salt"),
			MinLength: parseInt(getEnv("HASHIDS_MIN_LENGTH", "8"), 8),
		},
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return defaultValue
	}
	return duration
}

func parseInt(s string, defaultValue int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		fmt.Printf("Warning: Invalid integer '%s', using default\n", s)
		return defaultValue
	}
	return n
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
