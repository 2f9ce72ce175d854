package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/Houeta/staff-console/internal/validation"
)

// EnvPrefix prefixes every environment override, e.g. STAFF_API_URL.
const EnvPrefix = "STAFF"

type Config struct {
	Env        string           `mapstructure:"env"`        // Env is the current environment: local, development, production.
	API        APIConfig        `mapstructure:"api"`        // API points at the employee REST API.
	Web        WebConfig        `mapstructure:"web"`        // Web holds the console listener.
	UI         UIConfig         `mapstructure:"ui"`         // UI selects the validation and UX variant.
	Monitoring MonitoringConfig `mapstructure:"monitoring"` // Monitoring holds the metrics and health listener.
	APIServer  APIServerConfig  `mapstructure:"apiserver"`  // APIServer configures the reference employee API.
	Postgres   PostgresConfig   `mapstructure:"postgres"`   // Postgres holds the reference API database configuration.
}

// APIConfig struct holds the location of the employee REST API.
type APIConfig struct {
	URL string `mapstructure:"url"` // URL is the collection root, e.g. `http://localhost:8080/api/employees`
}

type WebConfig struct {
	Address string `mapstructure:"address"`
}

type UIConfig struct {
	Variant string `mapstructure:"variant"` // Variant is `basic` or `refined`
}

type MonitoringConfig struct {
	Port int `mapstructure:"port"`
}

// APIServerConfig struct holds the listener and CORS policy of the reference API server.
type APIServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"user"`     // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Dbname   string `mapstructure:"db_name"`  // Dbname is the name of the database.
}

// MustLoad loads the configuration from the file named by CONFIG_PATH (optional)
// and the environment, and panics if it is invalid.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

// Load reads defaults, then the YAML file at path when path is not empty, then
// environment variables. A path that does not exist is an error.
func Load(path string) (*Config, error) {
	vpr := viper.New()

	vpr.SetDefault("env", "local")
	vpr.SetDefault("api.url", "http://localhost:8080/api/employees")
	vpr.SetDefault("web.address", ":3000")
	vpr.SetDefault("ui.variant", string(validation.VariantRefined))
	vpr.SetDefault("monitoring.port", 8081) //nolint:mnd // default monitoring port
	vpr.SetDefault("apiserver.address", ":8080")
	vpr.SetDefault("apiserver.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	vpr.SetDefault("postgres.host", "localhost")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("postgres.user", "postgres")
	vpr.SetDefault("postgres.password", "")
	vpr.SetDefault("postgres.db_name", "employees")

	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}

		vpr.SetConfigFile(path)
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	vpr.SetEnvPrefix(EnvPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	for key, env := range map[string]string{
		"postgres.host":     "DB_HOST",
		"postgres.port":     "DB_PORT",
		"postgres.user":     "DB_USERNAME",
		"postgres.password": "DB_PASSWORD",
		"postgres.db_name":  "DB_NAME",
	} {
		if err := vpr.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := vpr.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values the binaries cannot start without.
func (c *Config) Validate() error {
	if _, err := validation.ParseVariant(c.UI.Variant); err != nil {
		return fmt.Errorf("invalid ui.variant: %w", err)
	}

	apiURL, err := url.Parse(c.API.URL)
	if err != nil || apiURL.Scheme == "" || apiURL.Host == "" {
		return fmt.Errorf("invalid api.url %q: an absolute URL is required", c.API.URL)
	}

	if !validPort(c.Monitoring.Port) {
		return fmt.Errorf("invalid monitoring.port %d: must be between 1 and 65535", c.Monitoring.Port)
	}

	if port, err := strconv.Atoi(c.Postgres.Port); err != nil || !validPort(port) {
		return fmt.Errorf("invalid postgres.port %q: must be between 1 and 65535", c.Postgres.Port)
	}

	return nil
}

// Variant returns the parsed ui.variant. Validate has already rejected unknown values.
func (c *Config) Variant() validation.Variant {
	variant, _ := validation.ParseVariant(c.UI.Variant)

	return variant
}

func validPort(port int) bool {
	return port > 0 && port <= 65535
}
