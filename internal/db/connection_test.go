package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
)

func TestBuildPoolConfig(t *testing.T) {
	t.Parallel()

	passwordFile := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("secret"), 0600))

	base := func() *config.DatabaseConfig {
		return &config.DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "arlo",
			Database:     "catalog",
			SSLMode:      "disable",
			PasswordFile: passwordFile,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.DatabaseConfig)
		wantErr string
		check   func(t *testing.T, cfg *config.DatabaseConfig)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *config.DatabaseConfig) {
				t.Helper()
				pc, err := buildPoolConfig(cfg)
				require.NoError(t, err)
				assert.Equal(t, int32(defaultMaxOpenConns), pc.MaxConns)
				assert.Equal(t, int32(defaultMaxIdleConns), pc.MinConns)
				assert.Equal(t, defaultConnMaxLifetime, pc.MaxConnLifetime)
				assert.Equal(t, "catalog", pc.ConnConfig.Database)
				assert.Equal(t, "secret", pc.ConnConfig.Password)
			},
		},
		{
			name: "overrides",
			mutate: func(c *config.DatabaseConfig) {
				c.MaxOpenConns = 4
				c.MaxIdleConns = 10
				c.ConnMaxLifetime = "1h"
			},
			check: func(t *testing.T, cfg *config.DatabaseConfig) {
				t.Helper()
				pc, err := buildPoolConfig(cfg)
				require.NoError(t, err)
				assert.Equal(t, int32(4), pc.MaxConns)
				assert.Equal(t, int32(4), pc.MinConns)
				assert.Equal(t, time.Hour, pc.MaxConnLifetime)
			},
		},
		{name: "missing host", mutate: func(c *config.DatabaseConfig) { c.Host = "" }, wantErr: "database host is required"},
		{name: "missing port", mutate: func(c *config.DatabaseConfig) { c.Port = 0 }, wantErr: "database port is required"},
		{name: "missing user", mutate: func(c *config.DatabaseConfig) { c.User = "" }, wantErr: "database user is required"},
		{name: "missing database", mutate: func(c *config.DatabaseConfig) { c.Database = "" }, wantErr: "database name is required"},
		{
			name:    "bad lifetime",
			mutate:  func(c *config.DatabaseConfig) { c.ConnMaxLifetime = "forever" },
			wantErr: "invalid connection max lifetime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			if tt.wantErr != "" {
				_, err := buildPoolConfig(cfg)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			tt.check(t, cfg)
		})
	}

	_, err := buildPoolConfig(nil)
	require.Error(t, err)
}
