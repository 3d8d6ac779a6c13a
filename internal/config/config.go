// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types, and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional blocks (upstream client, observability).
package config

import (
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// EnvPrefix is stripped from every variable before it is mapped to a key.
//
// Nesting uses a double underscore:
//
//	FOOTBALL_SERVER__PORT              -> server.port
//	FOOTBALL_API_FOOTBALL__RATE_LIMIT  -> api_football.rate_limit
const EnvPrefix = "FOOTBALL_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	APIFootball   APIFootballConfig    `koanf:"api_football" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored as seconds. WriteTimeout must outlast the slowest
// upstream call, see APIFootballConfig.MaxCallDuration.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RequestsPerSecond caps inbound requests per client IP. Zero disables it.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"min=0"`
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// DatabaseConfig contains connection parameters and pool tuning.
//
// Postgres is the production store. The sqlite3 driver is meant for local
// runs; only SQLitePath is read in that mode.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=postgres sqlite3"`
	Host            string `koanf:"host" validate:"required_if=Driver postgres"`
	Port            int    `koanf:"port" validate:"required_if=Driver postgres"`
	User            string `koanf:"user" validate:"required_if=Driver postgres"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
	SQLitePath      string `koanf:"sqlite_path" validate:"required_if=Driver sqlite3"`
}

// APIFootballConfig configures the outbound API-Football client.
type APIFootballConfig struct {
	Key     string `koanf:"key" validate:"required"`
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Host    string `koanf:"host" validate:"required"`

	// RateLimit requests are admitted per RateWindow.
	RateLimit  int           `koanf:"rate_limit" validate:"min=1"`
	RateWindow time.Duration `koanf:"rate_window" validate:"min=1s"`

	Timeout     time.Duration `koanf:"timeout" validate:"min=1s"`
	MaxAttempts int           `koanf:"max_attempts" validate:"min=1"`
	BackoffBase time.Duration `koanf:"backoff_base" validate:"min=0"`
	BackoffMax  time.Duration `koanf:"backoff_max" validate:"gtefield=BackoffBase"`

	// CacheTTL is accepted for compatibility with existing deployments.
	// Responses are not cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// DefaultAPIFootballConfig returns the free-tier settings of API-Football.
func DefaultAPIFootballConfig() APIFootballConfig {
	return APIFootballConfig{
		BaseURL:     "https://v3.football.api-sports.io",
		Host:        "v3.football.api-sports.io",
		RateLimit:   10,
		RateWindow:  time.Minute,
		Timeout:     30 * time.Second,
		MaxAttempts: 3,
		BackoffBase: 2 * time.Second,
		BackoffMax:  10 * time.Second,
		CacheTTL:    5 * time.Minute,
	}
}

// MaxCallDuration is the longest one admitted upstream call can take: a
// full quota wait, every attempt timing out, and the backoff between them.
func (c APIFootballConfig) MaxCallDuration() time.Duration {
	total := c.RateWindow + time.Duration(c.MaxAttempts)*c.Timeout

	delay := c.BackoffBase
	for attempt := 1; attempt < c.MaxAttempts; attempt++ {
		if c.BackoffMax > 0 && delay > c.BackoffMax {
			delay = c.BackoffMax
		}
		total += delay
		delay *= 2
	}
	return total
}

// checkWriteTimeout rejects a server that would cut off a response still
// waiting on API-Football.
func checkWriteTimeout(cfg *Config) error {
	write := time.Duration(cfg.Server.WriteTimeout) * time.Second
	if need := cfg.APIFootball.MaxCallDuration(); write <= need {
		return errors.Errorf("server.write_timeout %s must exceed the longest upstream call %s", write, need)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       180,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		APIFootball: DefaultAPIFootballConfig(),
	}
}

// envKey turns FOOTBALL_API_FOOTBALL__RATE_LIMIT into api_football.rate_limit.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig loads configuration from environment variables on top of the
// built-in defaults, validates it and fills in the observability block.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		logger.Error().Err(err).Msg("could not load env variables")
		return nil, errors.Wrap(err, "loading env variables")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Error().Err(err).Msg("could not unmarshal main config")
		return nil, errors.Wrap(err, "unmarshalling config")
	}

	// Fields left empty by the environment take the built-in defaults.
	if err := mergo.Merge(mainConfig, defaults()); err != nil {
		logger.Error().Err(err).Msg("could not apply config defaults")
		return nil, errors.Wrap(err, "applying config defaults")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Error().Err(err).Msg("config validation failed")
		return nil, errors.Wrap(err, "validating config")
	}

	if err := checkWriteTimeout(mainConfig); err != nil {
		logger.Error().Err(err).Msg("config validation failed")
		return nil, err
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed per service; environment always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid observability config")
		return nil, errors.Wrap(err, "validating observability config")
	}

	return mainConfig, nil
}
