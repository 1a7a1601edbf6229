package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openpos", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("POS_DATABASE_HOST", "db.internal")
	t.Setenv("POS_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "idle conns exceed open conns",
			mutate:  func(c *Config) { c.Database.MaxIdleConns = 50 },
			wantErr: "max_idle_conns",
		},
		{
			name: "production requires password",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.Database.Password = ""
				c.Database.SSLMode = "require"
			},
			wantErr: "password",
		},
		{
			name: "production rejects sslmode disable",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.Database.Password = "secret"
				c.Database.SSLMode = "disable"
			},
			wantErr: "sslmode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "pos",
		Password: "p@ss/word",
		DBName:   "openpos",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}
