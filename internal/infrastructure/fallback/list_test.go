package fallback

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"hospital-portal/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAppointment(id int64, slot string) entity.Appointment {
	return entity.Appointment{
		ID:      id,
		Doctor:  "3",
		Patient: "ada@example.org",
		Date:    "2026-03-02",
		Time:    slot,
		Status:  entity.AppointmentStatusScheduled,
	}
}

func TestFileListAppendAndLoad(t *testing.T) {
	ctx := context.Background()
	list := NewFileList(filepath.Join(t.TempDir(), "fallback.json"))

	empty, err := list.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, list.Append(ctx, sampleAppointment(1, "09:00")))
	require.NoError(t, list.Append(ctx, sampleAppointment(2, "10:00")))

	got, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "10:00", got[1].Time)
}

func TestFileListConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	list := NewFileList(filepath.Join(t.TempDir(), "fallback.json"))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, list.Append(ctx, sampleAppointment(int64(i+1), "09:00")))
		}()
	}
	wg.Wait()

	got, err := list.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestFileListCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.json")
	require.NoError(t, os.WriteFile(path, []byte("{not a list"), 0o644))

	list := NewFileList(path)
	_, err := list.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, list.Append(context.Background(), sampleAppointment(1, "09:00")))
}

func TestRedisListAppendAndLoad(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	list := NewRedisList(client, "appointments:fallback", log)

	require.NoError(t, list.Append(ctx, sampleAppointment(1, "09:00")))
	_, err := mr.RPush("appointments:fallback", "garbage")
	require.NoError(t, err)
	require.NoError(t, list.Append(ctx, sampleAppointment(2, "11:00")))

	got, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestRedisListUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	list := NewRedisList(client, "appointments:fallback", logrus.New())
	_, err := list.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, list.Append(context.Background(), sampleAppointment(1, "09:00")))
}
