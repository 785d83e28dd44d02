// Package config loads the service configuration from config.toml, with
// environment variables (optionally from a .env file) overriding the secrets.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the full service configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Logs     Logs     `toml:"logs"`
	Metrics  Metrics  `toml:"metrics"`
	Booking  Booking  `toml:"booking"`
	Chatbot  Chatbot  `toml:"chatbot"`
}

type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Booking holds the scheduling rules passed explicitly into the availability
// resolver. It is plain data, never process-global state.
type Booking struct {
	MinAdvanceBookingHours int `toml:"min_advance_booking_hours"`
	MaxAdvanceBookingDays  int `toml:"max_advance_booking_days"`
	DefaultDurationMinutes int `toml:"default_consultation_duration_minutes"`
	SlotIntervalMinutes    int `toml:"slot_interval_minutes"`
}

// Chatbot configures the bot-facing endpoints. APIKey is reserved for the
// outbound chat-platform integration, which is not implemented.
type Chatbot struct {
	Enabled       bool   `toml:"enabled"`
	WebhookSecret string `toml:"webhook_secret"`
	APIKey        string `toml:"api_key"`
}

// Load reads path and applies defaults and environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: Logs{Level: "INFO"},
		Metrics: Metrics{
			Path:        "/metrics",
			ServiceName: "scheduling-service",
		},
		Booking: Booking{
			MinAdvanceBookingHours: 24,
			MaxAdvanceBookingDays:  90,
			DefaultDurationMinutes: 30,
			SlotIntervalMinutes:    30,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = n
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("CHATBOT_WEBHOOK_SECRET"); v != "" {
		cfg.Chatbot.WebhookSecret = v
	}
	if v := os.Getenv("CHATBOT_API_KEY"); v != "" {
		cfg.Chatbot.APIKey = v
	}
}

func (c *Config) validate() error {
	b := c.Booking
	if b.SlotIntervalMinutes <= 0 {
		return fmt.Errorf("config: slot_interval_minutes must be positive, got %d", b.SlotIntervalMinutes)
	}
	if b.DefaultDurationMinutes <= 0 || b.DefaultDurationMinutes%b.SlotIntervalMinutes != 0 {
		return fmt.Errorf("config: default_consultation_duration_minutes must be a positive multiple of slot_interval_minutes")
	}
	if b.MinAdvanceBookingHours < 0 || b.MaxAdvanceBookingDays <= 0 {
		return fmt.Errorf("config: advance booking bounds out of range")
	}
	if c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database user and dbname are required")
	}
	return nil
}

// DSN builds the postgres connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
