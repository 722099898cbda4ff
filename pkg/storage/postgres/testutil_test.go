package postgres_test

import (
	"os"
	"strconv"
	"testing"

	"tokenwatch/config"
)

// testConfig returns connection settings for a live Postgres, or skips the
// test when TOKENWATCH_TEST_POSTGRES_HOST is not set.
func testConfig(t *testing.T) config.PostgresConfig {
	t.Helper()

	host := os.Getenv("TOKENWATCH_TEST_POSTGRES_HOST")
	if host == "" {
		t.Skip("TOKENWATCH_TEST_POSTGRES_HOST not set")
	}

	port := 5432
	if p, err := strconv.Atoi(os.Getenv("TOKENWATCH_TEST_POSTGRES_PORT")); err == nil {
		port = p
	}

	return config.PostgresConfig{
		Host:     host,
		Port:     port,
		User:     envOr("TOKENWATCH_TEST_POSTGRES_USER", "postgres"),
		Password: os.Getenv("TOKENWATCH_TEST_POSTGRES_PASSWORD"),
		DBName:   envOr("TOKENWATCH_TEST_POSTGRES_DB", "tokenwatch_test"),
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
