// Package config loads runtime settings from the environment.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"rampcrm/services"
)

// Config holds the settings read at startup.
type Config struct {
	GoogleMapsAPIKey string
	WarehouseAddress string
	DistanceTimeout  time.Duration
	StaffEmail       string
	StaffPassword    string
	SeedDemoData     bool
}

const defaultDistanceTimeout = 10 * time.Second

// Load reads a .env file when present and then the process environment.
// Explicit env vars win over .env values.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: could not load .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment with defaults.
func FromEnv() Config {
	return Config{
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		WarehouseAddress: getEnv("WAREHOUSE_ADDRESS", services.DefaultWarehouseAddress),
		DistanceTimeout:  durationSeconds("DISTANCE_TIMEOUT_SECONDS", defaultDistanceTimeout),
		StaffEmail:       os.Getenv("STAFF_EMAIL"),
		StaffPassword:    os.Getenv("STAFF_PASSWORD"),
		SeedDemoData:     parseBool("SEED_DEMO_DATA", false),
	}
}

// Distance returns the distance service settings.
func (c Config) Distance() services.DistanceConfig {
	return services.DistanceConfig{
		APIKey:           c.GoogleMapsAPIKey,
		WarehouseAddress: c.WarehouseAddress,
		Timeout:          c.DistanceTimeout,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		log.Printf("config: invalid boolean for %s: %s", key, v)
		return def
	}
	return b
}

func durationSeconds(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	secs, err := cast.ToFloat64E(v)
	if err != nil || secs <= 0 {
		log.Printf("config: invalid seconds for %s: %s", key, v)
		return def
	}
	return time.Duration(secs * float64(time.Second))
}
