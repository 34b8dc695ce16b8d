package store

import (
	"context"
	"fmt"
	"sync/atomic"

	"gorm.io/gorm"
)

// Handle is an open connection to a named database at a known schema
// version. Callers pass it explicitly; it owns the underlying connection.
type Handle struct {
	db      *gorm.DB
	name    string
	version int
	schema  Schema
	closed  atomic.Bool
}

func newHandle(db *gorm.DB, name string, version int, schema Schema) *Handle {
	return &Handle{db: db, name: name, version: version, schema: schema}
}

func (h *Handle) Name() string {
	return h.name
}

// Version is the schema version in effect for this handle.
func (h *Handle) Version() int {
	return h.version
}

// DB returns a session bound to ctx for operations outside a unit of work.
func (h *Handle) DB(ctx context.Context) *gorm.DB {
	return h.db.WithContext(ctx)
}

// UnitOfWork runs fn in one transaction. Every write made through tx commits
// together or not at all.
func (h *Handle) UnitOfWork(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if h.closed.Load() {
		return fmt.Errorf("%w: handle %s is closed", ErrStorageUnavailable, h.name)
	}
	return Translate(h.db.WithContext(ctx).Transaction(fn))
}

// HasCollection reports whether the named collection exists in the store.
func (h *Handle) HasCollection(ctx context.Context, name string) bool {
	spec, ok := h.schema.Lookup(name)
	if !ok || h.closed.Load() {
		return false
	}
	return h.db.WithContext(ctx).Migrator().HasTable(spec.Model)
}

// Require fails with ErrUnknownCollection when the collection does not exist.
func (h *Handle) Require(ctx context.Context, name string) error {
	if h.closed.Load() {
		return fmt.Errorf("%w: handle %s is closed", ErrStorageUnavailable, h.name)
	}
	if !h.HasCollection(ctx, name) {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return nil
}

// Collections lists the existing collections in schema order.
func (h *Handle) Collections(ctx context.Context) []string {
	var names []string
	for _, spec := range h.schema.CollectionsUpTo(h.schema.Latest()) {
		if h.HasCollection(ctx, spec.Name) {
			names = append(names, spec.Name)
		}
	}
	return names
}

// Ping checks that the underlying connection is reachable.
func (h *Handle) Ping(ctx context.Context) error {
	if h.closed.Load() {
		return fmt.Errorf("%w: handle %s is closed", ErrStorageUnavailable, h.name)
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Close releases the underlying connection. Safe to call more than once.
func (h *Handle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
