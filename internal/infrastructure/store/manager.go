package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// schemaVersion is the bookkeeping row recording the applied version of a
// named database.
type schemaVersion struct {
	Name      string `gorm:"primaryKey;type:varchar(100)"`
	Version   int    `gorm:"not null"`
	UpdatedAt time.Time
}

func (schemaVersion) TableName() string {
	return "schema_versions"
}

// Manager opens and upgrades named databases against a Schema.
type Manager struct {
	db     *gorm.DB
	schema Schema
	log    *logrus.Logger
}

func NewManager(db *gorm.DB, log *logrus.Logger) *Manager {
	return &Manager{db: db, schema: CanonicalSchema, log: log}
}

// WithSchema returns a manager using a different schema declaration.
func (m *Manager) WithSchema(schema Schema) *Manager {
	return &Manager{db: m.db, schema: schema, log: m.log}
}

// Open returns a handle on the named database at the requested version.
//
// When the stored version is lower, every collection introduced at or below
// the requested version is created or extended in one transaction and the
// new version recorded. An equal or higher stored version is left as is.
// Existing collections and records are never dropped.
func (m *Manager) Open(ctx context.Context, name string, version int) (*Handle, error) {
	if version < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&schemaVersion{}); err != nil {
		return nil, fmt.Errorf("%w: prepare schema bookkeeping: %v", ErrStorageUnavailable, err)
	}

	stored, err := m.storedVersion(db, name)
	if err != nil {
		return nil, err
	}

	if stored >= version {
		m.log.Debugf("Schema %s already at version %d (requested %d)", name, stored, version)
		return newHandle(m.db, name, stored, m.schema), nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, spec := range m.schema.CollectionsUpTo(version) {
			if err := tx.Migrator().AutoMigrate(spec.Model); err != nil {
				return fmt.Errorf("create collection %s: %w", spec.Name, err)
			}
			for _, idx := range spec.Indexes {
				if !tx.Migrator().HasIndex(spec.Model, idx) {
					return fmt.Errorf("%w: collection %s is missing index %s", ErrSchemaMismatch, spec.Name, idx)
				}
			}
		}
		return tx.Save(&schemaVersion{Name: name, Version: version, UpdatedAt: time.Now().UTC()}).Error
	})
	if err != nil {
		if errors.Is(err, ErrSchemaMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: upgrade %s to version %d: %v", ErrStorageUnavailable, name, version, err)
	}

	m.log.Infof("Schema %s upgraded from version %d to %d", name, stored, version)
	return newHandle(m.db, name, version, m.schema), nil
}

// Reset drops every collection of the schema and forgets the stored version
// of the named database.
func (m *Manager) Reset(ctx context.Context, name string) error {
	db := m.db.WithContext(ctx)

	specs := m.schema.CollectionsUpTo(m.schema.Latest())
	models := make([]any, 0, len(specs))
	for _, spec := range specs {
		models = append(models, spec.Model)
	}

	if err := db.Migrator().DropTable(models...); err != nil {
		return fmt.Errorf("%w: drop collections: %v", ErrStorageUnavailable, err)
	}
	if db.Migrator().HasTable(&schemaVersion{}) {
		if err := db.Where("name = ?", name).Delete(&schemaVersion{}).Error; err != nil {
			return Translate(err)
		}
	}

	m.log.Warnf("Database %s reset: %d collections dropped", name, len(models))
	return nil
}

func (m *Manager) storedVersion(db *gorm.DB, name string) (int, error) {
	var row schemaVersion
	result := db.Where("name = ?", name).Limit(1).Find(&row)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: read schema version: %v", ErrStorageUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, nil
	}
	return row.Version, nil
}
