package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestGetConnectionConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	assert.Equal(t, DefaultConnectionConfig(), getConnectionConfigFromEnv())
}

func TestGetConnectionConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "100")
	t.Setenv("DB_MAX_IDLE_CONNS", "50")
	t.Setenv("DB_CONN_MAX_LIFETIME", "2h")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45m")

	cfg := getConnectionConfigFromEnv()

	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, 50, cfg.MaxIdleConns)
	assert.Equal(t, 2*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 45*time.Minute, cfg.ConnMaxIdleTime)
}

func TestGetConnectionConfigFromEnv_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric open conns", "DB_MAX_OPEN_CONNS", "lots"},
		{"zero open conns", "DB_MAX_OPEN_CONNS", "0"},
		{"negative open conns", "DB_MAX_OPEN_CONNS", "-10"},
		{"non-numeric idle conns", "DB_MAX_IDLE_CONNS", "abc"},
		{"not a duration", "DB_CONN_MAX_LIFETIME", "forever"},
		{"zero lifetime", "DB_CONN_MAX_LIFETIME", "0s"},
		{"negative lifetime", "DB_CONN_MAX_LIFETIME", "-1h"},
		{"zero idle time", "DB_CONN_MAX_IDLE_TIME", "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			// Bad overrides fall back to the defaults instead of disabling
			// the pool.
			assert.Equal(t, DefaultConnectionConfig(), getConnectionConfigFromEnv())
		})
	}
}

func TestGetConnectionConfigFromEnv_PartialOverride(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "75")
	t.Setenv("DB_CONN_MAX_LIFETIME", "3h")

	cfg := getConnectionConfigFromEnv()

	assert.Equal(t, 75, cfg.MaxOpenConns)
	assert.Equal(t, 3*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

// Open() itself needs a live database; exercised against a real instance.
func TestOpen_Integration(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db := Open()
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	assert.NoError(t, db.PingContext(ctx))
}
