package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, env := range envNames {
		t.Setenv(env, "")
	}
	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:5173", cfg.ClientOrigin)
	assert.Equal(t, BackendSQLite, cfg.SessionBackend)
	assert.Equal(t, "./data/app.db", cfg.DatabasePath)
	assert.Equal(t, 3, cfg.MaxGuesses)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Equal(t, time.Hour, cfg.PurgeInterval)
	assert.Equal(t, time.Local, cfg.Location)
	assert.True(t, cfg.DevSecret())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("TILE_SECRET", "s3cret")
	t.Setenv("SESSION_BACKEND", "Badger")
	t.Setenv("BADGER_PATH", "/tmp/sessions")
	t.Setenv("PUZZLE_TZ", "America/New_York")
	t.Setenv("MAX_GUESSES", "5")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("PURGE_INTERVAL", "15m")

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.DevSecret())
	assert.Equal(t, BackendBadger, cfg.SessionBackend)
	assert.Equal(t, "/tmp/sessions", cfg.BadgerPath)
	assert.Equal(t, "America/New_York", cfg.Location.String())
	assert.Equal(t, 5, cfg.MaxGuesses)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 15*time.Minute, cfg.PurgeInterval)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name, key string
		value     any
	}{
		{"unknown backend", "sessions.backend", "redis"},
		{"bad timezone", "puzzle.timezone", "Mars/Olympus_Mons"},
		{"zero guesses", "puzzle.max_guesses", 0},
		{"zero timeout", "store.timeout", "0s"},
		{"negative purge", "store.purge_interval", "-1m"},
		{"blank secret", "tiles.secret", "  "},
		{"blank port", "http.port", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewViper()
			v.Set(tc.key, tc.value)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}
