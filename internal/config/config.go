package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"hotel-ob/internal/datastore"
	"hotel-ob/internal/logging"
	"hotel-ob/internal/wizard"
)

// Config is read from the environment.
type Config struct {
	APIURL     string        `env:"HOTELOB_API_URL" envDefault:"http://localhost:3000/api"`
	APIToken   string        `env:"HOTELOB_API_TOKEN"`
	APITimeout time.Duration `env:"HOTELOB_API_TIMEOUT" envDefault:"30s"`

	StoreType        string `env:"HOTELOB_STORE_TYPE" envDefault:"postgres"`
	ConnectionString string `env:"DB_CONN_STRING" envDefault:"postgres://localhost:5432/postgres?sslmode=disable"`

	ListenAddr string `env:"HOTELOB_LISTEN_ADDR" envDefault:":8080"`
	LogLevel   string `env:"HOTELOB_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"HOTELOB_LOG_FORMAT" envDefault:"console"`

	// Permissions is the comma separated permission set of the operator.
	Permissions string `env:"HOTELOB_PERMISSIONS" envDefault:"edit_all"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration of the current process.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DataStoreConfig returns the data store configuration. Unknown store types
// fall back to PostgreSQL.
func (c Config) DataStoreConfig() datastore.Config {
	switch strings.ToLower(c.StoreType) {
	case "memory", "mem", "mock":
		return datastore.Config{Type: datastore.MemoryStore}
	default:
		return datastore.Config{Type: datastore.PostgreSQLStore, ConnectionString: c.ConnectionString}
	}
}

// IsMemoryMode returns true if sessions are only kept in process memory
func (c Config) IsMemoryMode() bool {
	return c.DataStoreConfig().Type == datastore.MemoryStore
}

// WizardPermissions returns the operator permission set.
func (c Config) WizardPermissions() wizard.Permissions {
	return wizard.ParsePermissions(c.Permissions)
}

// Format returns the log encoding.
func (c Config) Format() logging.Format {
	if strings.EqualFold(c.LogFormat, string(logging.FormatJSON)) {
		return logging.FormatJSON
	}
	return logging.FormatConsole
}
