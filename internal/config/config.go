package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultPort          = "5175"
	defaultLogLevel      = "info"
	defaultClientOrigin  = "http://localhost:5173"
	defaultDatabasePath  = "./data/app.db"
	defaultBadgerPath    = "./data/sessions"
	defaultTimezone      = "Local"
	defaultMaxGuesses    = 3
	defaultStoreTimeout  = 2 * time.Second
	defaultPurgeInterval = time.Hour

	// DevTileSecret keys tile ids when TILE_SECRET is unset. Never use it in
	// production: anyone holding it can forge tile ids.
	DevTileSecret = "dev_tile_secret_change_me"
)

// Session backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// envNames maps viper keys to the environment variables that set them.
var envNames = map[string]string{
	"http.port":            "PORT",
	"log.level":            "LOG_LEVEL",
	"client.origin":        "CLIENT_ORIGIN",
	"tiles.secret":         "TILE_SECRET",
	"database.path":        "DATABASE_PATH",
	"sessions.backend":     "SESSION_BACKEND",
	"badger.path":          "BADGER_PATH",
	"quotes.file":          "QUOTES_FILE",
	"puzzle.timezone":      "PUZZLE_TZ",
	"puzzle.max_guesses":   "MAX_GUESSES",
	"store.timeout":        "STORE_TIMEOUT",
	"store.purge_interval": "PURGE_INTERVAL",
}

// AppConfig captures runtime configuration for the server.
type AppConfig struct {
	Port           string
	LogLevel       string
	ClientOrigin   string
	TileSecret     string
	DatabasePath   string
	SessionBackend string
	BadgerPath     string
	QuotesFile     string
	Location       *time.Location
	MaxGuesses     int
	StoreTimeout   time.Duration
	PurgeInterval  time.Duration
}

// DevSecret reports whether tile ids are keyed with the built-in secret.
func (c AppConfig) DevSecret() bool { return c.TileSecret == DevTileSecret }

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	v := viper.New()
	ApplyDefaults(v)
	return v
}

// ApplyDefaults configures defaults and env bindings on v.
func ApplyDefaults(v *viper.Viper) {
	for key, env := range envNames {
		_ = v.BindEnv(key, env)
	}

	v.SetDefault("http.port", defaultPort)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("client.origin", defaultClientOrigin)
	v.SetDefault("tiles.secret", DevTileSecret)
	v.SetDefault("database.path", defaultDatabasePath)
	v.SetDefault("sessions.backend", BackendSQLite)
	v.SetDefault("badger.path", defaultBadgerPath)
	v.SetDefault("quotes.file", "")
	v.SetDefault("puzzle.timezone", defaultTimezone)
	v.SetDefault("puzzle.max_guesses", defaultMaxGuesses)
	v.SetDefault("store.timeout", defaultStoreTimeout)
	v.SetDefault("store.purge_interval", defaultPurgeInterval)
}

// Load parses runtime configuration from v.
func Load(v *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		Port:           strings.TrimSpace(v.GetString("http.port")),
		LogLevel:       v.GetString("log.level"),
		ClientOrigin:   v.GetString("client.origin"),
		TileSecret:     v.GetString("tiles.secret"),
		DatabasePath:   v.GetString("database.path"),
		SessionBackend: strings.ToLower(strings.TrimSpace(v.GetString("sessions.backend"))),
		BadgerPath:     v.GetString("badger.path"),
		QuotesFile:     v.GetString("quotes.file"),
		MaxGuesses:     v.GetInt("puzzle.max_guesses"),
		StoreTimeout:   v.GetDuration("store.timeout"),
		PurgeInterval:  v.GetDuration("store.purge_interval"),
	}

	loc, err := time.LoadLocation(strings.TrimSpace(v.GetString("puzzle.timezone")))
	if err != nil {
		return AppConfig{}, fmt.Errorf("puzzle.timezone: %w", err)
	}
	cfg.Location = loc

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) validate() error {
	if c.Port == "" {
		return fmt.Errorf("http.port is required")
	}
	if strings.TrimSpace(c.TileSecret) == "" {
		return fmt.Errorf("tiles.secret is required")
	}
	switch c.SessionBackend {
	case BackendSQLite:
		if strings.TrimSpace(c.DatabasePath) == "" {
			return fmt.Errorf("database.path is required for the sqlite backend")
		}
	case BackendMemory, BackendBadger:
	default:
		return fmt.Errorf("sessions.backend %q is not one of sqlite, memory, badger", c.SessionBackend)
	}
	if c.MaxGuesses < 1 {
		return fmt.Errorf("puzzle.max_guesses must be at least 1")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("store.timeout must be positive")
	}
	if c.PurgeInterval <= 0 {
		return fmt.Errorf("store.purge_interval must be positive")
	}
	return nil
}
