package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-portal/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactMessages(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewContactUsecase(env.handle, env.log, env.contacts, env.activity, "GB").(*contactUsecase)

	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time {
		at = at.Add(time.Minute)
		return at
	}

	first, err := uc.Submit(ctx, &dto.ContactMessageRequest{Name: "Ada", Email: "ADA@example.org", Message: " Parking? "})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.org", first.Email)
	assert.Equal(t, "Parking?", first.Message)

	_, err = uc.Submit(ctx, &dto.ContactMessageRequest{Name: "Charles", Message: "Opening hours"})
	require.NoError(t, err)

	list, err := uc.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Charles", list.Messages[0].Name)

	require.NoError(t, uc.Delete(ctx, first.ID))
	assert.ErrorIs(t, uc.Delete(ctx, first.ID), ErrContactMessageNotFound)

	list, err = uc.List(ctx, "parking")
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestActivityLogList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for i := range 3 {
		require.NoError(t, env.activity.Record(ctx, env.db(), "Entry %d", i))
	}

	uc := NewActivityLogUsecase(env.handle, env.log, env.logs)

	resp, err := uc.List(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Logs, 2)
	assert.Equal(t, "Entry 2", resp.Logs[0].Action)
	assert.Equal(t, "Entry 1", resp.Logs[1].Action)

	resp, err = uc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Logs, 3)
}
