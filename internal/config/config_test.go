package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "StudioDesk", cfg.App.Name)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.Origins)
}

func TestConfig_DataSource(t *testing.T) {
	type testCase struct {
		name       string
		setup      func(c *Config)
		wantDriver string
		wantDSN    string
		wantErr    bool
	}

	tests := []testCase{
		{
			name: "Postgres",
			setup: func(c *Config) {
				c.DB.Driver = DriverPostgres
				c.DB.User = "studio"
				c.DB.Password = "pw"
				c.DB.Host = "db"
				c.DB.Port = 5432
				c.DB.Name = "studiodesk"
			},
			wantDriver: "pgx",
			wantDSN:    "postgres://studio:pw@db:5432/studiodesk?sslmode=disable",
		},
		{
			name: "SQLite",
			setup: func(c *Config) {
				c.DB.Driver = DriverSQLite
				c.DB.Path = "/tmp/s.db"
			},
			wantDriver: "sqlite",
			wantDSN:    "/tmp/s.db?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)",
		},
		{
			name:    "Unknown",
			setup:   func(c *Config) { c.DB.Driver = "mysql" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			tt.setup(&c)

			driver, dsn, err := c.DataSource()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, driver)
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}
