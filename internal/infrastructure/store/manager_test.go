package store

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"hospital-portal/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestManagerOpenCreatesEveryCollection(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(openTestDB(t), testLogger())

	handle, err := manager.Open(ctx, "healthcareDB", 4)
	require.NoError(t, err)

	assert.Equal(t, "healthcareDB", handle.Name())
	assert.Equal(t, 4, handle.Version())
	assert.Equal(t, []string{
		entity.CollectionPatients,
		entity.CollectionDoctors,
		entity.CollectionAccounts,
		entity.CollectionContactMessages,
		entity.CollectionLogs,
		entity.CollectionAppointments,
		entity.CollectionMedicines,
		entity.CollectionPrescriptions,
		entity.CollectionRestockRequests,
	}, handle.Collections(ctx))
}

func TestManagerUpgradeKeepsRecords(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	manager := NewManager(db, testLogger())

	v2, err := manager.Open(ctx, "healthcareDB", 2)
	require.NoError(t, err)
	assert.False(t, v2.HasCollection(ctx, entity.CollectionAppointments))
	require.NoError(t, v2.DB(ctx).Create(&entity.Patient{Name: "Ada Lovelace", NHS: "9434765919"}).Error)

	v4, err := manager.Open(ctx, "healthcareDB", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, v4.Version())
	assert.True(t, v4.HasCollection(ctx, entity.CollectionAppointments))
	assert.True(t, v4.HasCollection(ctx, entity.CollectionRestockRequests))

	var count int64
	require.NoError(t, v4.DB(ctx).Model(&entity.Patient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestManagerOpenLowerVersionIsNoop(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(openTestDB(t), testLogger())

	_, err := manager.Open(ctx, "healthcareDB", 4)
	require.NoError(t, err)

	handle, err := manager.Open(ctx, "healthcareDB", 2)
	require.NoError(t, err)
	assert.Equal(t, 4, handle.Version())
	assert.True(t, handle.HasCollection(ctx, entity.CollectionRestockRequests))
}

func TestManagerOpenRejectsInvalidVersion(t *testing.T) {
	manager := NewManager(openTestDB(t), testLogger())

	for _, version := range []int{0, -1} {
		_, err := manager.Open(context.Background(), "healthcareDB", version)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	}
}

func TestHandleRequire(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(openTestDB(t), testLogger())

	handle, err := manager.Open(ctx, "healthcareDB", 3)
	require.NoError(t, err)

	tests := []struct {
		name       string
		collection string
		wantErr    error
	}{
		{name: "existing collection", collection: entity.CollectionMedicines},
		{name: "introduced by a later version", collection: entity.CollectionRestockRequests, wantErr: ErrUnknownCollection},
		{name: "never declared", collection: "invoices", wantErr: ErrUnknownCollection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handle.Require(ctx, tt.collection)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManagerReset(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(openTestDB(t), testLogger())

	handle, err := manager.Open(ctx, "healthcareDB", 4)
	require.NoError(t, err)
	require.NoError(t, handle.DB(ctx).Create(&entity.Doctor{Name: "Dr Who"}).Error)

	require.NoError(t, manager.Reset(ctx, "healthcareDB"))
	assert.Empty(t, handle.Collections(ctx))

	reopened, err := manager.Open(ctx, "healthcareDB", 4)
	require.NoError(t, err)

	var count int64
	require.NoError(t, reopened.DB(ctx).Model(&entity.Doctor{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnitOfWorkRollsBack(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(openTestDB(t), testLogger())

	handle, err := manager.Open(ctx, "healthcareDB", 4)
	require.NoError(t, err)

	err = handle.UnitOfWork(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&entity.Account{Username: "admin", Password: "x", Role: entity.RoleAdmin}).Error; err != nil {
			return err
		}
		return tx.Create(&entity.Account{Username: "admin", Password: "y", Role: entity.RoleAdmin}).Error
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	var count int64
	require.NoError(t, handle.DB(ctx).Model(&entity.Account{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestClosedHandleIsUnavailable(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(openTestDB(t), testLogger())

	handle, err := manager.Open(ctx, "healthcareDB", 4)
	require.NoError(t, err)
	require.NoError(t, handle.Ping(ctx))

	require.NoError(t, handle.Close())
	require.NoError(t, handle.Close())

	assert.ErrorIs(t, handle.Ping(ctx), ErrStorageUnavailable)
	assert.ErrorIs(t, handle.Require(ctx, entity.CollectionPatients), ErrStorageUnavailable)
	assert.ErrorIs(t, handle.UnitOfWork(ctx, func(tx *gorm.DB) error { return nil }), ErrStorageUnavailable)
}

func TestManagerOpenMissingIndexRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	manager := NewManager(db, testLogger()).WithSchema(Schema{
		Versions: []Version{{
			Number: 1,
			Collections: []CollectionSpec{
				{Name: entity.CollectionPatients, Model: &entity.Patient{}, KeyPath: "id", AutoIncrement: true,
					Indexes: []string{"idx_patients_name", "idx_patients_postcode"}},
			},
		}},
	})

	handle, err := manager.Open(ctx, "healthcareDB", 1)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Nil(t, handle)

	assert.False(t, db.Migrator().HasTable(&entity.Patient{}))

	var versions int64
	require.NoError(t, db.Model(&schemaVersion{}).Count(&versions).Error)
	assert.Zero(t, versions)
}
