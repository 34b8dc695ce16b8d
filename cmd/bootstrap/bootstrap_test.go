package bootstrap

import (
	"net"
	"path/filepath"
	"testing"

	"hospital-portal/internal/infrastructure/broadcast"
	"hospital-portal/internal/infrastructure/fallback"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRedisEnv(t *testing.T, addr string, required bool) string {
	t.Helper()

	dir := t.TempDir()
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_PATH", filepath.Join(dir, "healthcare.db"))
	t.Setenv("STORE_FALLBACK_PATH", filepath.Join(dir, "fallback.json"))
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", host)
	t.Setenv("REDIS_PORT", port)
	if required {
		t.Setenv("REDIS_REQUIRED", "true")
	} else {
		t.Setenv("REDIS_REQUIRED", "false")
	}

	return filepath.Join(dir, "missing.env")
}

func TestOpenUsesRedisBackends(t *testing.T) {
	mr := miniredis.RunT(t)
	app, err := Open(setRedisEnv(t, mr.Addr(), false))
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.RedisClient)
	list, broadcaster := app.appointmentBackends()
	assert.IsType(t, &fallback.RedisList{}, list)
	assert.IsType(t, &broadcast.RedisBroadcaster{}, broadcaster)
}

func TestOpenDegradesWhenRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	path := setRedisEnv(t, mr.Addr(), false)
	mr.Close()

	app, err := Open(path)
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.RedisClient)
	list, broadcaster := app.appointmentBackends()
	assert.IsType(t, &fallback.FileList{}, list)
	assert.IsType(t, &broadcast.LocalBroadcaster{}, broadcaster)
}

func TestOpenFailsWhenRequiredRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	path := setRedisEnv(t, mr.Addr(), true)
	mr.Close()

	_, err := Open(path)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
