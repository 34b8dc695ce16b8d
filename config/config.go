package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSlots is the fixed daily slot menu offered for every doctor.
var DefaultSlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

type Config struct {
	App       AppConfig
	Log       LogConfig
	Store     StoreConfig
	DB        DBConfig
	Redis     RedisConfig
	Fixtures  FixtureConfig
	Scheduler SchedulerConfig
	Inventory InventoryConfig
	Phone     PhoneConfig
	JWT       JWTConfig
}

type AppConfig struct {
	Port       string
	Env        string
	CORSOrigin string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// StoreConfig selects the primary record store. Driver is "sqlite" (embedded
// database file at Path) or "postgres" (DB section).
type StoreConfig struct {
	Driver       string
	Path         string
	Name         string
	Version      int
	FallbackPath string
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
}

type RedisConfig struct {
	Enabled         bool
	Required        bool
	Host            string
	Port            string
	Password        string
	DB              int
	AppointmentsKey string
	Channel         string
}

// FixtureConfig points at the static JSON seed files. BaseURL wins over Dir.
type FixtureConfig struct {
	BaseURL     string
	Dir         string
	CacheBust   bool
	SeedOnStart bool
	Timeout     time.Duration
}

type SchedulerConfig struct {
	Slots []string
}

type InventoryConfig struct {
	SeedStock        int
	MaterializeStock int
}

type PhoneConfig struct {
	Region string
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// LoadConfig reads the env file at path (".env" when empty) and overlays the
// process environment. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 8 * time.Hour
	}

	fixtureTimeout, err := time.ParseDuration(v.GetString("FIXTURES_TIMEOUT"))
	if err != nil {
		fixtureTimeout = 5 * time.Second
	}

	slots, err := parseSlots(v.GetString("SCHEDULER_SLOTS"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			CORSOrigin: v.GetString("APP_CORS_ORIGIN"),
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Store: StoreConfig{
			Driver:       strings.ToLower(v.GetString("STORE_DRIVER")),
			Path:         v.GetString("STORE_PATH"),
			Name:         v.GetString("STORE_NAME"),
			Version:      v.GetInt("STORE_VERSION"),
			FallbackPath: v.GetString("STORE_FALLBACK_PATH"),
		},
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Redis: RedisConfig{
			Enabled:         v.GetBool("REDIS_ENABLED"),
			Required:        v.GetBool("REDIS_REQUIRED"),
			Host:            v.GetString("REDIS_HOST"),
			Port:            v.GetString("REDIS_PORT"),
			Password:        v.GetString("REDIS_PASSWORD"),
			DB:              v.GetInt("REDIS_DB"),
			AppointmentsKey: v.GetString("REDIS_APPOINTMENTS_KEY"),
			Channel:         v.GetString("REDIS_CHANNEL"),
		},
		Fixtures: FixtureConfig{
			BaseURL:     strings.TrimRight(v.GetString("FIXTURES_BASE_URL"), "/"),
			Dir:         v.GetString("FIXTURES_DIR"),
			CacheBust:   v.GetBool("FIXTURES_CACHE_BUST"),
			SeedOnStart: v.GetBool("FIXTURES_SEED_ON_START"),
			Timeout:     fixtureTimeout,
		},
		Scheduler: SchedulerConfig{
			Slots: slots,
		},
		Inventory: InventoryConfig{
			SeedStock:        v.GetInt("INVENTORY_SEED_STOCK"),
			MaterializeStock: v.GetInt("INVENTORY_MATERIALIZE_STOCK"),
		},
		Phone: PhoneConfig{
			Region: strings.ToUpper(v.GetString("PHONE_REGION")),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("STORE_PATH", "healthcare.db")
	v.SetDefault("STORE_NAME", "healthcareDB")
	v.SetDefault("STORE_VERSION", 4)
	v.SetDefault("STORE_FALLBACK_PATH", "appointments.fallback.json")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_APPOINTMENTS_KEY", "appointments")
	v.SetDefault("REDIS_CHANNEL", "appointments")
	v.SetDefault("FIXTURES_DIR", "fixtures")
	v.SetDefault("FIXTURES_CACHE_BUST", true)
	v.SetDefault("FIXTURES_SEED_ON_START", true)
	v.SetDefault("INVENTORY_SEED_STOCK", 50)
	v.SetDefault("INVENTORY_MATERIALIZE_STOCK", 10)
	v.SetDefault("PHONE_REGION", "GB")
	v.SetDefault("JWT_SECRET", "change-me")
}

// parseSlots reads a comma-separated list of HH:MM slot times. An empty list
// yields DefaultSlots.
func parseSlots(raw string) ([]string, error) {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		t, err := time.Parse("15:04", item)
		if err != nil || t.Format("15:04") != item {
			return nil, fmt.Errorf("SCHEDULER_SLOTS: %q is not an HH:MM time", item)
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultSlots...), nil
	}
	return out, nil
}
