package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Log         LogConfig         `mapstructure:"log"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
	Webhook     WebhookConfig     `mapstructure:"webhook"`
	Secrets     SecretsConfig     `mapstructure:"secrets"`
}

// AppConfig holds general application settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// HTTPConfig holds HTTP server settings
type HTTPConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// Addr returns the listen address
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// MigrateURL returns the connection URL used by the migration tool
func (c DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

// SchedulerConfig holds sync scheduler settings
type SchedulerConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	DefaultCronExpr string `mapstructure:"default_cron_expr"`
	DefaultTimezone string `mapstructure:"default_timezone"`
	MaxConcurrent   int    `mapstructure:"max_concurrent"`
}

// MarketplaceConfig holds marketplace API settings
type MarketplaceConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	PageSize       int           `mapstructure:"page_size"`
	TokenMargin    time.Duration `mapstructure:"token_margin"`
}

// WebhookConfig holds webhook delivery settings
type WebhookConfig struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	MaxResponseSize int64         `mapstructure:"max_response_size"`
}

// SecretsConfig holds credential encryption settings
type SecretsConfig struct {
	MasterKey string `mapstructure:"master_key"`
}

// Load reads configuration from file and environment variables.
// Environment variables use the CATSYNC_ prefix with underscores,
// e.g. CATSYNC_DATABASE_HOST.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/catsync")
	}

	v.SetEnvPrefix("CATSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required configuration values
func (c *Config) Validate() error {
	if c.Database.Driver == "postgres" && c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Secrets.MasterKey == "" {
		return fmt.Errorf("secrets master key is required")
	}
	if c.Marketplace.PageSize <= 0 {
		return fmt.Errorf("marketplace page size must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "catsync")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.max_body_bytes", 1<<20)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.time_format", "2006-01-02T15:04:05.000Z07:00")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.default_cron_expr", "0 3 * * *")
	v.SetDefault("scheduler.default_timezone", "UTC")
	v.SetDefault("scheduler.max_concurrent", 4)

	v.SetDefault("marketplace.request_timeout", "30s")
	v.SetDefault("marketplace.page_size", 100)
	v.SetDefault("marketplace.token_margin", "60s")

	v.SetDefault("webhook.request_timeout", "10s")
	v.SetDefault("webhook.max_response_size", 65536)
}
