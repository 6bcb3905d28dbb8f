package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
	// VinAPIBaseURL points at the external VIN registry; overridable for tests.
	VinAPIBaseURL string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("PARTLINE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	vinBase := os.Getenv("VIN_API_BASE_URL")
	if vinBase == "" {
		vinBase = "https://vpic.nhtsa.dot.gov/api"
	}

	return Config{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		VinAPIBaseURL: vinBase,
	}
}
