package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string

	// CRM feed sync
	FeedURL      string
	SyncKey      string // shared secret for the HTTP sync trigger
	SyncInterval time.Duration

	// Card gateway
	GatewayURL      string
	GatewayMerchant string
	GatewaySecret   string
	Currency        string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	interval := time.Duration(0)
	if raw := os.Getenv("SYNC_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("[config] bad SYNC_INTERVAL %q: %v (scheduling disabled)", raw, err)
		} else {
			interval = d
		}
	}

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		DBDSN:           getenv("DB_DSN", "store.db"),
		MediaDir:        getenv("MEDIA_DIR", "./web/media"),
		LogFile:         getenv("LOG_FILE", "./store.log"),
		FeedURL:         os.Getenv("FEED_URL"),
		SyncKey:         os.Getenv("SYNC_KEY"),
		SyncInterval:    interval,
		GatewayURL:      getenv("GATEWAY_URL", "https://pay.example.com/checkout"),
		GatewayMerchant: os.Getenv("GATEWAY_MERCHANT"),
		GatewaySecret:   os.Getenv("GATEWAY_SECRET"),
		Currency:        getenv("CURRENCY", "UAH"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s SYNC_INTERVAL=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.SyncInterval)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
