package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: ErrDuplicateKey},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "idx_accounts_username"}, want: ErrDuplicateKey},
		{name: "postgres undefined table", err: &pgconn.PgError{Code: "42P01"}, want: ErrUnknownCollection},
		{name: "sqlite unique constraint", err: errors.New("constraint failed: UNIQUE constraint failed: accounts.username (2067)"), want: ErrDuplicateKey},
		{name: "sqlite missing table", err: errors.New("SQL logic error: no such table: medicines (1)"), want: ErrUnknownCollection},
		{name: "closed connection", err: sql.ErrConnDone, want: ErrStorageUnavailable},
		{name: "record not found passes through", err: gorm.ErrRecordNotFound, want: gorm.ErrRecordNotFound},
		{name: "context cancellation passes through", err: context.Canceled, want: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Translate(tt.err), tt.want)
		})
	}
}

func TestTranslateNil(t *testing.T) {
	assert.NoError(t, Translate(nil))
}

func TestTranslateKeepsUnknownErrors(t *testing.T) {
	err := errors.New("disk quota exceeded")
	assert.Same(t, err, Translate(err))
}
