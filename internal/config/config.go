package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides the application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
)

// Config is the full environment-driven application configuration.
type Config struct {
	Environment string
	HTTPAddr    string

	Database  DatabaseConfig
	Auth      AuthConfig
	Printing  PrintingConfig
	Tracing   TracingConfig
	Bootstrap BootstrapConfig
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN builds the postgres connection string, including a statement timeout so
// runaway queries cannot hold a pooled connection.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=demoacademia&options=-c statement_timeout=3000",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type PrintingConfig struct {
	// BrowserURL is the DevTools control URL of an already-running Chrome.
	// Empty means launch a managed headless instance.
	BrowserURL string
	// ReleaseGrace is how long a render surface is kept alive after the print
	// action has been dispatched. Teardown is best effort: there is no reliable
	// completion signal from an interactive print flow.
	ReleaseGrace time.Duration
}

type TracingConfig struct {
	Enabled          bool
	ServiceName      string
	ServiceVersion   string
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

type BootstrapConfig struct {
	EnsureDefaultCampusAndAdmin bool
}

// IsProduction reports whether the app runs with production safety rails.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads configuration from the environment. A .env file is honored in
// local development and ignored when absent.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment: getenv("APP_ENV", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		Database: DatabaseConfig{
			Host:         getenv("DB_HOST", "localhost"),
			Port:         getenv("DB_PORT", "5432"),
			User:         getenv("DB_USER", "postgres"),
			Password:     getenv("DB_PASSWORD", ""),
			Name:         getenv("DB_NAME", "school_db"),
			SSLMode:      getenv("DB_SSLMODE", "disable"),
			MaxOpenConns: getenvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getenvInt("DB_MAX_IDLE_CONNS", 10),
		},
		Auth: AuthConfig{
			JWTSecret: getenv("JWT_SECRET", ""),
			TokenTTL:  getenvDuration("JWT_TOKEN_TTL", 12*time.Hour),
		},
		Printing: PrintingConfig{
			BrowserURL:   getenv("PRINT_BROWSER_URL", ""),
			ReleaseGrace: getenvDuration("PRINT_RELEASE_GRACE", 4*time.Second),
		},
		Tracing: TracingConfig{
			Enabled:          getenvBool("OTEL_ENABLED", false),
			ServiceName:      getenv("OTEL_SERVICE_NAME", "demoacademia"),
			ServiceVersion:   getenv("OTEL_SERVICE_VERSION", "dev"),
			ExporterEndpoint: getenv("OTEL_EXPORTER_ENDPOINT", ""),
			ExporterProtocol: getenv("OTEL_EXPORTER_PROTOCOL", "grpc"),
			SamplingRatio:    getenvFloat("OTEL_SAMPLING_RATIO", 1.0),
		},
		Bootstrap: BootstrapConfig{
			EnsureDefaultCampusAndAdmin: getenvBool("BOOTSTRAP_DEFAULT_CAMPUS", true),
		},
	}

	if cfg.IsProduction() && cfg.Auth.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required in production")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getenvFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
