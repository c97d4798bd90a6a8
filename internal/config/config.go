package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
// A .env file in the working directory is loaded first when present.
type Config struct {
	NWSBaseURL   string
	NWSUserAgent string
	NWSTimeout   time.Duration

	MongoURI      string
	MongoDatabase string

	// Kafka mirror configuration. The mirror is enabled when brokers are set.
	KafkaBrokers     []string
	KafkaMirrorTopic string
	KafkaEnabled     bool

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ErrorLogPath    string
	Workers         int
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, applying defaults where
// unset.
func Load() (*Config, error) {
	// Best-effort: running without a .env file is the normal case.
	_ = godotenv.Load()

	nwsTimeout, err := parseDuration("NWS_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	workers, err := parseInt("WORKERS", 4)
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		NWSBaseURL:   envOrDefault("NWS_BASE_URL", "https://api.weather.gov"),
		NWSUserAgent: envOrDefault("NWS_USER_AGENT", "weather-ingest/1.0"),
		NWSTimeout:   nwsTimeout,

		MongoURI:      envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: envOrDefault("MONGO_DATABASE", "weather_database"),

		KafkaBrokers:     brokers,
		KafkaMirrorTopic: envOrDefault("KAFKA_MIRROR_TOPIC", "enriched-weather-records"),
		KafkaEnabled:     kafkaEnabled,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ErrorLogPath:    envOrDefault("ERROR_LOG_PATH", "logs/error_log.log"),
		Workers:         workers,
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.MongoDatabase == "" {
		return nil, errors.New("MONGO_DATABASE is required")
	}
	if cfg.Workers < 1 {
		return nil, errors.New("WORKERS must be at least 1")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	v := envOrDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func parseBrokers(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
