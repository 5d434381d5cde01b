package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	FavoritesBackendCookie   = "cookie"
	FavoritesBackendPostgres = "postgres"
	FavoritesBackendMinIO    = "minio"
	FavoritesBackendMemory   = "memory"
)

type Config struct {
	Port                 string
	APIBaseURL           string
	APITimeout           time.Duration
	SessionSecret        string
	CookieSecure         bool
	FavoritesBackend     string
	DatabaseURL          string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinIOBucketFavorites string
	MinIOObjectPrefix    string
	LogLevel             string
	LogstashTCPAddr      string
	AllowOrigins         []string
	MapCenterLat         float64
	MapCenterLng         float64
	MapZoom              int
	EnablePlaceCreate    bool
	EnablePlaceUpdate    bool
	EnablePlaceDelete    bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	timeout := 10 * time.Second
	if v, err := time.ParseDuration(getenv("API_TIMEOUT", "10s")); err == nil && v > 0 {
		timeout = v
	}

	lat := 34.0738
	if v, err := strconv.ParseFloat(getenv("MAP_CENTER_LAT", "34.0738"), 64); err == nil {
		lat = v
	}
	lng := -118.2737
	if v, err := strconv.ParseFloat(getenv("MAP_CENTER_LNG", "-118.2737"), 64); err == nil {
		lng = v
	}
	zoom := 12
	if v, err := strconv.Atoi(getenv("MAP_ZOOM", "12")); err == nil && v > 0 {
		zoom = v
	}

	cfg := Config{
		Port:              getenv("PORT", "8080"),
		APIBaseURL:        must("API_BASE_URL"),
		APITimeout:        timeout,
		SessionSecret:     must("SESSION_SECRET"),
		CookieSecure:      getenv("COOKIE_SECURE", "false") == "true",
		FavoritesBackend:  strings.ToLower(getenv("FAVORITES_BACKEND", FavoritesBackendCookie)),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogstashTCPAddr:   getenv("LOGSTASH_TCP_ADDR", ""),
		AllowOrigins:      splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		MapCenterLat:      lat,
		MapCenterLng:      lng,
		MapZoom:           zoom,
		EnablePlaceCreate: getenv("ENABLE_PLACE_CREATE", "true") == "true",
		EnablePlaceUpdate: getenv("ENABLE_PLACE_UPDATE", "true") == "true",
		EnablePlaceDelete: getenv("ENABLE_PLACE_DELETE", "true") == "true",
	}

	switch cfg.FavoritesBackend {
	case FavoritesBackendPostgres:
		cfg.DatabaseURL = must("DATABASE_URL")
	case FavoritesBackendMinIO:
		cfg.MinIOEndpoint = must("MINIO_ENDPOINT")
		cfg.MinIOAccessKey = must("MINIO_ACCESS_KEY")
		cfg.MinIOSecretKey = must("MINIO_SECRET_KEY")
		cfg.MinIOUseSSL = getenv("MINIO_USE_SSL", "false") == "true"
		cfg.MinIOBucketFavorites = getenv("MINIO_BUCKET_FAVORITES", "thirdplace-favorites")
		cfg.MinIOObjectPrefix = getenv("MINIO_OBJECT_PREFIX", "")
	case FavoritesBackendCookie, FavoritesBackendMemory:
	default:
		panic("unsupported FAVORITES_BACKEND: " + cfg.FavoritesBackend)
	}

	return cfg
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
