package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"poker_club_backend/pkg/utils"
)

// Config struct to hold the configuration settings
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Uploads   UploadsConfig   `yaml:"uploads"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN renders the lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// JWTConfig holds club session token settings.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// RateLimitConfig bounds login attempts per client IP.
type RateLimitConfig struct {
	LoginPerMinute float64 `yaml:"login_per_minute"`
	LoginBurst     int     `yaml:"login_burst"`
}

// UploadsConfig holds where offer images are written and served from.
type UploadsConfig struct {
	Dir        string `yaml:"dir"`
	URLPrefix  string `yaml:"url_prefix"`
	MaxImageMB int    `yaml:"max_image_mb"`
}

// LogConfig selects zerolog level and output format (console|json).
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:8081"},
		},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "poker_club_user",
			DBName:  "poker_club_hub",
			SSLMode: "disable",
		},
		JWT: JWTConfig{TTL: 72 * time.Hour},
		RateLimit: RateLimitConfig{
			LoginPerMinute: 10,
			LoginBurst:     5,
		},
		Uploads: UploadsConfig{
			Dir:        "uploads",
			URLPrefix:  "/uploads",
			MaxImageMB: 5,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig loads the configuration from a YAML file on top of the defaults,
// then applies environment overrides. A missing file is not an error.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// fall through to env only
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = utils.Getenv("PORT", cfg.Server.Port)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = utils.SplitCommaList(v)
	}

	cfg.Postgres.Host = utils.Getenv("DB_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = utils.Getenv("DB_PORT", cfg.Postgres.Port)
	cfg.Postgres.User = utils.Getenv("DB_USER", cfg.Postgres.User)
	cfg.Postgres.Password = utils.Getenv("DB_PASSWORD", cfg.Postgres.Password)
	cfg.Postgres.DBName = utils.Getenv("DB_NAME", cfg.Postgres.DBName)
	cfg.Postgres.SSLMode = utils.Getenv("DB_SSLMODE", cfg.Postgres.SSLMode)

	cfg.JWT.Secret = utils.Getenv("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.TTL = utils.GetenvDuration("JWT_TTL", cfg.JWT.TTL)

	cfg.RateLimit.LoginPerMinute = utils.GetenvFloat("LOGIN_RATE_PER_MINUTE", cfg.RateLimit.LoginPerMinute)
	cfg.RateLimit.LoginBurst = utils.GetenvInt("LOGIN_RATE_BURST", cfg.RateLimit.LoginBurst)

	cfg.Uploads.Dir = utils.Getenv("UPLOADS_DIR", cfg.Uploads.Dir)
	cfg.Uploads.MaxImageMB = utils.GetenvInt("UPLOADS_MAX_IMAGE_MB", cfg.Uploads.MaxImageMB)

	cfg.Log.Level = utils.Getenv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = utils.Getenv("LOG_FORMAT", cfg.Log.Format)
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port == "" {
		problems = append(problems, "server.port is required")
	}
	if c.RateLimit.LoginPerMinute <= 0 || c.RateLimit.LoginBurst <= 0 {
		problems = append(problems, "rate_limit values must be positive")
	}
	if c.Uploads.MaxImageMB <= 0 {
		problems = append(problems, "uploads.max_image_mb must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
