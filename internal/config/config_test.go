package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalmarket/core/internal/config"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("DB_HOST", "localhost")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_DefaultsPort(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestDSN_IncludesAllFields(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USERNAME", "app")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("DB_NAME", "rentals")
	t.Setenv("DB_PORT", "5432")

	cfg, err := config.Load()
	require.NoError(t, err)

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "user=app")
	assert.Contains(t, dsn, "password=hunter2")
	assert.Contains(t, dsn, "dbname=rentals")
	assert.Contains(t, dsn, "port=5432")
}
