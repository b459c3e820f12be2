package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB opens the MySQL connection from environment configuration.
func InitDB() (*gorm.DB, error) {
	host := getenv("DB_HOST", "127.0.0.1")
	port := getenv("DB_PORT", "3306")
	user := getenv("DB_USER", "root")
	pass := os.Getenv("DB_PASSWORD")
	name := getenv("DB_NAME", "booking_core")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, name)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// AMQPURL returns the notification broker URL, empty when the broker is
// not configured (notifications then fall back to log-only dispatch).
func AMQPURL() string {
	return os.Getenv("AMQP_URL")
}

// PublicBaseURL is the prefix for verification links embedded in
// outbound notifications.
func PublicBaseURL() string {
	return getenv("PUBLIC_BASE_URL", "http://localhost:8080")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
