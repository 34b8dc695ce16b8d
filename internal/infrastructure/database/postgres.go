package database

import (
	"fmt"
	"net"
	"net/url"

	"hospital-portal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// postgresDSN builds a URL-form DSN so credentials with spaces or quotes
// survive intact.
func postgresDSN(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {sslMode}, "TimeZone": {"UTC"}}.Encode(),
	}
	return u.String()
}

// NewPostgresConnection opens the shared server store.
func NewPostgresConnection(cfg config.DBConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(postgresDSN(cfg)), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres %s/%s: %w", cfg.Host, cfg.Name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}

	open := cfg.MaxOpenConns
	if open <= 0 {
		open = 25
	}
	sqlDB.SetMaxOpenConns(open)
	sqlDB.SetMaxIdleConns(max(open/4, 2))

	return db, nil
}
