package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL   = "http://localhost:4000"
	DefaultDebounce = 300 * time.Millisecond

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Env        string           `yaml:"env"`        // Env is the current environment: local, development, production.
	API        APIConfig        `yaml:"api"`        // API holds the employee API location
	Session    SessionConfig    `yaml:"session"`    // Session holds where the login session is kept
	UI         UIConfig         `yaml:"ui"`         // UI holds terminal interface settings
	Monitoring MonitoringConfig `yaml:"monitoring"` // Monitoring holds the health/metrics server settings
	MockAPI    MockAPIConfig    `yaml:"mockapi"`    // MockAPI holds the development API settings
	Postgres   PostgresConfig   `yaml:"postgres"`   // Postgres holds the database configuration
}

// APIConfig struct holds the location of the employee API.
type APIConfig struct {
	URL string `yaml:"url"` // URL is the base URL in format `http://host:port`
}

type SessionConfig struct {
	Path string `yaml:"path"` // Path is the session file location
}

type UIConfig struct {
	Debounce time.Duration `yaml:"debounce"` // Debounce delays search filtering while typing
	LogPath  string        `yaml:"log_path"` // LogPath is where the TUI writes its log
}

type MonitoringConfig struct {
	Port int `yaml:"port"` // Port of the monitoring server, 0 disables it
}

type MockAPIConfig struct {
	Port    int    `yaml:"port"`    // Port the mock API listens on
	Storage string `yaml:"storage"` // Storage is memory or postgres
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
}

// DSN builds a postgres connection URL.
func (p PostgresConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     p.Dbname,
		RawQuery: "sslmode=disable",
	}
	return dsn.String()
}

// Load reads the configuration from defaults, an optional `.env` file, an
// optional YAML file named by CONFIG_PATH and the environment, in increasing
// priority.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	vpr := viper.New()
	setDefaults(vpr)

	vpr.SetEnvPrefix("STAFFDESK")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()
	if err := vpr.BindEnv("api.url", "STAFFDESK_API_URL", "API_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind api url: %w", err)
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		API: APIConfig{
			URL: strings.TrimRight(vpr.GetString("api.url"), "/"),
		},
		Session: SessionConfig{
			Path: vpr.GetString("session.path"),
		},
		UI: UIConfig{
			Debounce: vpr.GetDuration("ui.debounce"),
			LogPath:  vpr.GetString("ui.log_path"),
		},
		Monitoring: MonitoringConfig{
			Port: vpr.GetInt("monitoring.port"),
		},
		MockAPI: MockAPIConfig{
			Port:    vpr.GetInt("mockapi.port"),
			Storage: vpr.GetString("mockapi.storage"),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func setDefaults(vpr *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	vpr.SetDefault("env", "local")
	vpr.SetDefault("api.url", DefaultAPIURL)
	vpr.SetDefault("session.path", filepath.Join(home, ".staffdesk", "session.json"))
	vpr.SetDefault("ui.debounce", DefaultDebounce)
	vpr.SetDefault("ui.log_path", filepath.Join(home, ".staffdesk", "staffdesk.log"))
	vpr.SetDefault("monitoring.port", 0)
	vpr.SetDefault("mockapi.port", 4000) //nolint:mnd // default API port
	vpr.SetDefault("mockapi.storage", StorageMemory)
	vpr.SetDefault("postgres.host", "localhost")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("postgres.user", "postgres")
	vpr.SetDefault("postgres.db_name", "staffdesk")
}

func (c *Config) validate() error {
	if _, err := url.ParseRequestURI(c.API.URL); err != nil {
		return fmt.Errorf("invalid api url '%s': %w", c.API.URL, err)
	}
	if c.UI.Debounce < 0 {
		return errors.New("ui debounce must not be negative")
	}
	switch c.MockAPI.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown mockapi storage '%s'", c.MockAPI.Storage)
	}
	return nil
}
