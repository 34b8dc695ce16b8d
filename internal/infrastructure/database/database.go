package database

import (
	"fmt"

	"hospital-portal/config"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// NewConnection opens the primary record store selected by cfg.Store.Driver.
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	if cfg.App.Env == "development" {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Store.Driver {
	case DriverSQLite, "":
		db, err = NewSQLiteConnection(cfg.Store.Path, gormCfg)
	case DriverPostgres:
		db, err = NewPostgresConnection(cfg.DB, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	logrus.Infof("Successfully connected to %s store", cfg.Store.Driver)
	return db, nil
}
