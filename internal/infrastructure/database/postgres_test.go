package database

import (
	"net/url"
	"testing"

	"hospital-portal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dsn := postgresDSN(config.DBConfig{
		Host:     "db.internal",
		Port:     "5432",
		User:     "portal",
		Password: "p@ss word",
		Name:     "healthcare",
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:5432", u.Host)
	assert.Equal(t, "/healthcare", u.Path)
	password, _ := u.User.Password()
	assert.Equal(t, "p@ss word", password)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "UTC", u.Query().Get("TimeZone"))
}

func TestPostgresDSNKeepsSSLMode(t *testing.T) {
	u, err := url.Parse(postgresDSN(config.DBConfig{Host: "db", Port: "5432", SSLMode: "require"}))
	require.NoError(t, err)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}
