package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "healthcareDB", cfg.Store.Name)
	assert.Equal(t, 4, cfg.Store.Version)
	assert.Equal(t, DefaultSlots, cfg.Scheduler.Slots)
	assert.Equal(t, 8*time.Hour, cfg.JWT.AccessExpiry)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.env")
	content := "APP_PORT=9090\n" +
		"STORE_DRIVER=Postgres\n" +
		"SCHEDULER_SLOTS=08:30, 13:00\n" +
		"FIXTURES_BASE_URL=https://cdn.example.org/fixtures/\n" +
		"JWT_ACCESS_EXPIRY=30m\n" +
		"PHONE_REGION=gb\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, []string{"08:30", "13:00"}, cfg.Scheduler.Slots)
	assert.Equal(t, "https://cdn.example.org/fixtures", cfg.Fixtures.BaseURL)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, "GB", cfg.Phone.Region)
}

func TestLoadConfigEnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\n"), 0o644))
	t.Setenv("APP_PORT", "7070")
	t.Setenv("APP_CORS_ORIGIN", "https://portal.example.org")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, "https://portal.example.org", cfg.App.CORSOrigin)
}

func TestLoadConfigRejectsMalformedSlots(t *testing.T) {
	tests := []struct {
		name  string
		slots string
	}{
		{name: "not a time", slots: "09:00, noon"},
		{name: "hour out of range", slots: "25:00"},
		{name: "single digit hour", slots: "9:00"},
		{name: "seconds", slots: "09:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SCHEDULER_SLOTS", tt.slots)

			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
			assert.ErrorContains(t, err, "SCHEDULER_SLOTS")
		})
	}
}
