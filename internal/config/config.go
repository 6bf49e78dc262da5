package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	JWT       JWTConfig       `yaml:"jwt"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Log       LogConfig       `yaml:"log"`
	Rental    RentalConfig    `yaml:"rental"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                  string   `yaml:"host"`
	Port                  int      `yaml:"port"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
}

// GRPCConfig contains the gRPC health server settings
type GRPCConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	SSLMode      string `yaml:"ssl_mode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
}

// StorageConfig selects the record store backend
type StorageConfig struct {
	Driver            string `yaml:"driver"` // "postgres" or "memory"
	CategoryCacheSize int    `yaml:"category_cache_size"`
}

// AuthConfig toggles bearer token checks on mutating routes
type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	Issuer            string `yaml:"issuer"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// RabbitMQConfig contains event publishing settings. An empty URL disables
// publishing.
type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// RentalConfig contains settlement settings
type RentalConfig struct {
	// Timezone whose calendar dates are used for delay fees.
	Timezone string `yaml:"timezone"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	Enabled        bool   `yaml:"enabled"`
	OverdueReport  string `yaml:"overdue_report"`
	DatabaseHealth string `yaml:"database_health"`
}

// Load reads configuration from a YAML file. A .env file in the working
// directory is loaded first so its values can override the file.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}
	if val := os.Getenv("STORAGE_DRIVER"); val != "" {
		c.Storage.Driver = val
	}

	// Servers
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("GRPC_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.GRPC.Port)
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// RabbitMQ
	if val := os.Getenv("RABBITMQ_URL"); val != "" {
		c.RabbitMQ.URL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Rental
	if val := os.Getenv("RENTAL_TIMEZONE"); val != "" {
		c.Rental.Timezone = val
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.GRPC.Port < 0 || c.GRPC.Port > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.GRPC.Port)
	}
	if c.Server.RequestTimeoutSeconds == 0 {
		c.Server.RequestTimeoutSeconds = 15
	}

	// Storage validation
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}

	// JWT validation
	if c.Auth.Enabled {
		if c.JWT.Secret == "" {
			return fmt.Errorf("JWT secret is required when auth is enabled")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters")
		}
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "boardcamp"
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 12 * 60
	}

	// RabbitMQ defaults
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "boardcamp.events"
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Rental validation
	if c.Rental.Timezone == "" {
		c.Rental.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(c.Rental.Timezone); err != nil {
		return fmt.Errorf("invalid rental timezone %q: %w", c.Rental.Timezone, err)
	}

	// Scheduler defaults
	if c.Scheduler.OverdueReport == "" {
		c.Scheduler.OverdueReport = "0 0 8 * * *" // 8 AM daily
	}
	if c.Scheduler.DatabaseHealth == "" {
		c.Scheduler.DatabaseHealth = "*/30 * * * * *" // every 30 seconds
	}
	for name, spec := range map[string]string{
		"overdue_report":  c.Scheduler.OverdueReport,
		"database_health": c.Scheduler.DatabaseHealth,
	} {
		if _, err := CronParser.Parse(spec); err != nil {
			return fmt.Errorf("invalid %s schedule %q: %w", name, spec, err)
		}
	}

	return nil
}

// CronParser accepts the six-field specs used in the scheduler section.
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCAddress returns the gRPC health server address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.GRPC.Port)
}

// RequestTimeout bounds the work done for a single HTTP request
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// RentalLocation returns the timezone used for calendar date arithmetic
func (c *Config) RentalLocation() *time.Location {
	loc, err := time.LoadLocation(c.Rental.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
