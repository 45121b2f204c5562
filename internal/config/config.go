package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "GYM"

// Supported database drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file, flags or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	App       AppConfig       `mapstructure:"app"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // mongo | memory
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// Enabled reports whether history exports can be written.
func (c S3Config) Enabled() bool {
	return strings.TrimSpace(c.BucketName) != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// AppConfig holds domain settings.
type AppConfig struct {
	// Timezone is the IANA zone in which "today" and weekdays are computed.
	Timezone string `mapstructure:"timezone"`
}

// Location loads the configured timezone. Validate guarantees it succeeds.
func (c AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type AdminConfig struct {
	OwnerEmail string `mapstructure:"owner_email"` // Cannot be deleted or demoted
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // Empty keeps stdout only
	JSON  bool   `mapstructure:"json"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"` // Empty disables rate limiting
	Password string `mapstructure:"password"`
}

type RateLimitConfig struct {
	AuthPerMinute int `mapstructure:"auth_per_minute"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	v := viper.New()
	ApplyDefaults(v)
	return v
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
// server.address is read from GYM_SERVER_ADDRESS, and so on.
func ApplyDefaults(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gym_app")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("admin.owner_email", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.json", true)
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("ratelimit.auth_per_minute", 20)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_path_style", false)
	v.SetDefault("metrics.enabled", true)
}

// ReadFile loads the config file into v. A missing default file is not an error,
// since every key can come from the environment; a missing explicit path is.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Admin.OwnerEmail = strings.ToLower(strings.TrimSpace(cfg.Admin.OwnerEmail))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail at request time.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("jwt.secret is required")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("jwt.expiration must be positive")
	}
	switch c.Database.Driver {
	case DriverMongo:
		if strings.TrimSpace(c.Database.URI) == "" || strings.TrimSpace(c.Database.Name) == "" {
			return errors.New("database.uri and database.name are required for the mongo driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("invalid app.timezone %q: %w", c.App.Timezone, err)
	}
	if c.RateLimit.AuthPerMinute <= 0 {
		return errors.New("ratelimit.auth_per_minute must be positive")
	}
	return nil
}
