package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // LEDGER_TIMEZONE must resolve in minimal images

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level
	LogFormat    string // "json" or "text"

	// Storage
	StorageBackend string
	DatabaseURL    string
	EnableDBCheck  bool
	SQLitePath     string
	LedgerFilePath string
	LedgerKey      string

	// Ledger behaviour
	TicketPrice decimal.Decimal
	RecentLimit int
	Location    *time.Location

	// HTTP
	CORSAllowedOrigins []string
	RateLimit          string

	// Events; publishing is off when AMQPURL is empty
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("STORAGE_BACKEND", BackendMemory)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("SQLITE_PATH", "data/tix.db")
	viper.SetDefault("LEDGER_FILE_PATH", "data/ledger.json")
	viper.SetDefault("LEDGER_KEY", "buddyTixTracker")
	viper.SetDefault("TICKET_PRICE", "20")
	viper.SetDefault("RECENT_LIMIT", 5)
	viper.SetDefault("LEDGER_TIMEZONE", "UTC")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "tix.events")
	viper.SetDefault("AMQP_ROUTING_KEY", "ledger.changed")

	// Environment variables override .env values, which override the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		LogFormat:      strings.ToLower(viper.GetString("LOG_FORMAT")),
		StorageBackend: strings.ToLower(viper.GetString("STORAGE_BACKEND")),
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		EnableDBCheck:  viper.GetBool("ENABLE_DB_CHECK"),
		SQLitePath:     viper.GetString("SQLITE_PATH"),
		LedgerFilePath: viper.GetString("LEDGER_FILE_PATH"),
		LedgerKey:      viper.GetString("LEDGER_KEY"),
		RecentLimit:    viper.GetInt("RECENT_LIMIT"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		AMQPURL:        viper.GetString("AMQP_URL"),
		AMQPExchange:   viper.GetString("AMQP_EXCHANGE"),
		AMQPRoutingKey: viper.GetString("AMQP_ROUTING_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", cfg.LogFormat)
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendFile, BackendSQLite:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_BACKEND=%s", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if strings.TrimSpace(cfg.LedgerKey) == "" {
		return nil, fmt.Errorf("LEDGER_KEY cannot be empty")
	}

	price, err := decimal.NewFromString(viper.GetString("TICKET_PRICE"))
	if err != nil || !price.IsPositive() {
		return nil, fmt.Errorf("invalid TICKET_PRICE %q: must be a positive number", viper.GetString("TICKET_PRICE"))
	}
	cfg.TicketPrice = price

	if cfg.RecentLimit <= 0 {
		return nil, fmt.Errorf("invalid RECENT_LIMIT %d: must be positive", cfg.RecentLimit)
	}

	loc, err := time.LoadLocation(viper.GetString("LEDGER_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
