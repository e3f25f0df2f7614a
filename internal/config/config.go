package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration

	// Backend selects where the catalog and orders live.
	Backend                  string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	DatabaseURL              string
	RunMigrations            bool
	PollInterval             time.Duration

	// RabbitMQURL empty disables order events.
	RabbitMQURL string

	DemoUserID     string
	GeocoderURL    string
	AllowedOrigins []string
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		ShutdownTimeout: parseDuration(getenv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
		RequestTimeout:  parseDuration(getenv("REQUEST_TIMEOUT", "15s"), 15*time.Second),

		Backend:                  strings.ToLower(getenv("BACKEND", BackendMemory)),
		FirestoreProjectID:       getenv("FIRESTORE_PROJECT_ID", ""),
		FirestoreCredentialsFile: getenv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DatabaseURL:              getenv("DATABASE_URL", ""),
		RunMigrations:            envBool("RUN_MIGRATIONS", true),
		PollInterval:             parseDuration(getenv("POLL_INTERVAL", "3s"), 3*time.Second),

		RabbitMQURL: getenv("RABBITMQ_URL", ""),

		DemoUserID:     getenv("DEMO_USER_ID", "demoUser123"),
		GeocoderURL:    getenv("GEOCODER_URL", "https://nominatim.openstreetmap.org/"),
		AllowedOrigins: splitCSV(getenv("ALLOWED_ORIGINS", "*")),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required for backend %q", c.Backend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for backend %q", c.Backend)
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v, err := strconv.ParseBool(getenv(k, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
