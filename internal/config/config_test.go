package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Setenv("STORE_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "auth-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "auth.db", cfg.SQLite.Path)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 5*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Setenv("STORE_DRIVER", "POSTGRES")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/auth")
	t.Setenv("AUTH_TOKEN_TTL_SECONDS", "60")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, time.Minute, cfg.Auth.TokenTTL())
	assert.Zero(t, cfg.App.RequestTimeout())
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing secret",
			env:  map[string]string{"STORE_DRIVER": "sqlite"},
			want: "AUTH_JWT_SECRET",
		},
		{
			name: "short secret",
			env:  map[string]string{"STORE_DRIVER": "sqlite", "AUTH_JWT_SECRET": "short"},
			want: "AUTH_JWT_SECRET",
		},
		{
			name: "postgres without dsn",
			env:  map[string]string{"AUTH_JWT_SECRET": testSecret},
			want: "POSTGRES_DSN",
		},
		{
			name: "unknown driver",
			env:  map[string]string{"AUTH_JWT_SECRET": testSecret, "STORE_DRIVER": "mongo"},
			want: "unsupported STORE_DRIVER",
		},
		{
			name: "non positive ttl",
			env:  map[string]string{"AUTH_JWT_SECRET": testSecret, "STORE_DRIVER": "sqlite", "AUTH_TOKEN_TTL_SECONDS": "-5"},
			want: "AUTH_TOKEN_TTL_SECONDS",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("AUTH_JWT_SECRET", "")
			t.Setenv("STORE_DRIVER", "")
			t.Setenv("POSTGRES_DSN", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
