package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"StudioDesk"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"studiodesk"`
		Path     string `envconfig:"DB_PATH" default:"studiodesk.db"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" default:"change-me"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
	}

	Seed struct {
		// Fixture is an optional JSON file replacing the embedded demo data.
		Fixture string `envconfig:"SEED_FIXTURE"`
	}

	Documents struct {
		Token string `envconfig:"DOCUMENTS_TOKEN"`
	}

	CORS struct {
		Origins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	}
}

// DataSource returns the driver name and DSN for database.Open.
func (c *Config) DataSource() (driver, dsn string, err error) {
	switch c.DB.Driver {
	case DriverPostgres:
		return "pgx", fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name), nil
	case DriverSQLite:
		return "sqlite", c.DB.Path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)", nil
	default:
		return "", "", fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
