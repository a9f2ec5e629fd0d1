package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	BusBootstrap []string
	BusTopic     string
	BusGroup     string
	StoreURI     string
	StoreDB      string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	CacheTTL     time.Duration
}

func Load() Config {
	// .env is a dev convenience; real deployments set the environment.
	_ = godotenv.Load(".env")

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		BusBootstrap: strings.Split(env("BUS_BOOTSTRAP", "localhost:9092"), ","),
		BusTopic:     env("BUS_TOPIC", "hotel-availability-searches"),
		BusGroup:     env("BUS_GROUP", "search-persister"),
		StoreURI:     env("STORE_URI", "mongodb://localhost:27017"),
		StoreDB:      env("STORE_DB", "search-db"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
