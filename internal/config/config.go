package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting, sourced from the environment so no
// credential ever lives in code.
type Config struct {
	DBHost     string `env:"DASH_DB_HOST" envDefault:"localhost"`
	DBUser     string `env:"DASH_DB_USER" envDefault:"root"`
	DBPassword string `env:"DASH_DB_PASSWORD"`
	DBName     string `env:"DASH_DB_NAME"`

	Addr        string `env:"DASH_ADDR" envDefault:":5000"`
	StaticDir   string `env:"DASH_STATIC_DIR" envDefault:"static"`
	HistoryPath string `env:"DASH_HISTORY_DB" envDefault:"dashboard.db"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// DSN assembles the MySQL connection string. A host without an explicit
// port gets the MySQL default.
func (c Config) DSN() string {
	host := c.DBHost
	if !strings.Contains(host, ":") {
		host += ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", c.DBUser, c.DBPassword, host, c.DBName)
}
