// config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"neuroflow/services"
	"neuroflow/storage"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Coach   CoachConfig   `yaml:"coach"`
	Media   MediaConfig   `yaml:"media"`
	Streak  StreakConfig  `yaml:"streak"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// ServiceToken gates every request when set.
	ServiceToken string `yaml:"service_token"`
	// JWTSecret enables bearer-token identities (HS256, subject = user id).
	JWTSecret string `yaml:"jwt_secret"`
}

type StorageConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	RedisURL string `yaml:"redis_url"`
	Prefix   string `yaml:"prefix"`
}

type CoachConfig struct {
	APIKey         string `yaml:"api_key"`
	ReasoningModel string `yaml:"reasoning_model"`
	FastModel      string `yaml:"fast_model"`
	ImageModel     string `yaml:"image_model"`
}

// MediaConfig points at the Cloudflare R2 bucket that holds vision board images.
type MediaConfig struct {
	AccountID       string `yaml:"account_id"`
	AccessKeyID     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
	Bucket          string `yaml:"bucket"`
	CDNBaseURL      string `yaml:"cdn_base_url"`
}

// Enabled reports whether enough is set to talk to R2.
func (m MediaConfig) Enabled() bool {
	return m.AccountID != "" && m.AccessKeyID != "" && m.AccessKeySecret != "" && m.Bucket != ""
}

type StreakConfig struct {
	Policy          string        `yaml:"policy"`
	Timezone        string        `yaml:"timezone"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Storage: StorageConfig{
			Driver: storage.DriverPostgres,
			Prefix: "neuroflow-",
		},
		Coach: CoachConfig{
			ReasoningModel: services.DefaultGenAIModels.Reasoning,
			FastModel:      services.DefaultGenAIModels.Fast,
			ImageModel:     services.DefaultGenAIModels.Image,
		},
		Streak: StreakConfig{
			Policy:          string(services.StreakStrict),
			Timezone:        "UTC",
			RefreshInterval: time.Hour,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the config from defaults, the YAML file at path (or $NEUROFLOW_CONFIG), a .env file
// in the working directory and finally the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("NEUROFLOW_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.ServiceToken, "SERVICE_TOKEN")
	setString(&c.Server.JWTSecret, "JWT_SECRET")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}

	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.DSN, "DATABASE_URL")
	setString(&c.Storage.RedisURL, "REDIS_URL")
	setString(&c.Storage.Prefix, "STORAGE_PREFIX")

	setString(&c.Coach.APIKey, "GEMINI_API_KEY")

	setString(&c.Media.AccountID, "CLOUDFLARE_ACCOUNT_ID")
	setString(&c.Media.AccessKeyID, "R2_ACCESS_KEY_ID")
	setString(&c.Media.AccessKeySecret, "R2_ACCESS_KEY_SECRET")
	setString(&c.Media.Bucket, "R2_BUCKET_NAME")
	setString(&c.Media.CDNBaseURL, "CDN_BASE_URL")

	setString(&c.Streak.Policy, "STREAK_POLICY")
	setString(&c.Streak.Timezone, "TIMEZONE")
	if v := os.Getenv("STREAK_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid STREAK_REFRESH_INTERVAL: %w", err)
		}
		c.Streak.RefreshInterval = d
	}

	setString(&c.Logging.Level, "LOG_LEVEL")
	return nil
}

// Validate checks values that would otherwise fail late, at first use.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case storage.DriverPostgres, storage.DriverSQLite:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("DATABASE_URL must be set for the %s driver", c.Storage.Driver)
		}
	case storage.DriverRedis:
		if c.Storage.RedisURL == "" {
			return errors.New("REDIS_URL must be set for the redis driver")
		}
	case storage.DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.StreakPolicy(); err != nil {
		return err
	}
	if c.Streak.RefreshInterval < time.Minute {
		return fmt.Errorf("streak refresh interval %s is below one minute", c.Streak.RefreshInterval)
	}
	return nil
}

// Location is the time zone that decides where a day starts.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Streak.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Streak.Timezone, err)
	}
	return loc, nil
}

func (c *Config) StreakPolicy() (services.StreakPolicy, error) {
	return services.ParseStreakPolicy(c.Streak.Policy)
}

func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:   c.Storage.Driver,
		DSN:      c.Storage.DSN,
		RedisURL: c.Storage.RedisURL,
		Prefix:   c.Storage.Prefix,
	}
}

func (c *Config) GenAIModels() services.GenAIModels {
	return services.GenAIModels{
		Reasoning: c.Coach.ReasoningModel,
		Fast:      c.Coach.FastModel,
		Image:     c.Coach.ImageModel,
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
