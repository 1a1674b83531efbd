package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT"`
	SMTPUser     string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	FromEmail    string `yaml:"from_email" env:"FROM_EMAIL"`
}

type JWTConfig struct {
	Secret     string        `yaml:"secret" env:"SECRET"`
	AccessTTL  time.Duration `yaml:"access_ttl" env:"ACCESS_TTL"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env:"REFRESH_TTL"`
}

type OTPConfig struct {
	TTL            time.Duration `yaml:"ttl" env:"TTL"`
	MaxAttempts    int           `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
	MismatchPolicy string        `yaml:"mismatch_policy" env:"MISMATCH_POLICY"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"BOT_TOKEN"`
	ChatID   int64  `yaml:"chat_id" env:"CHAT_ID"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port" env:"PORT"`
	} `yaml:"server" envPrefix:"SERVER_"`
	Database struct {
		DSN string `yaml:"url" env:"URL"`
	} `yaml:"database" envPrefix:"DATABASE_"`
	Email    EmailConfig `yaml:"email" envPrefix:"EMAIL_"`
	JWT      JWTConfig   `yaml:"jwt" envPrefix:"JWT_"`
	OTP      OTPConfig   `yaml:"otp" envPrefix:"OTP_"`
	Security struct {
		BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
	} `yaml:"security" envPrefix:"SECURITY_"`
	Telegram TelegramConfig `yaml:"telegram" envPrefix:"TELEGRAM_"`
}

// LoadConfig читает YAML, затем перекрывает значения переменными окружения APP_*.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("APP_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath
	}

	var cfg Config
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// без файла живём только на ENV
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "APP_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoadConfig() *Config {
	cfg, err := LoadConfig("")
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.JWT.AccessTTL <= 0 {
		c.JWT.AccessTTL = 15 * time.Minute
	}
	if c.JWT.RefreshTTL <= 0 {
		c.JWT.RefreshTTL = 30 * 24 * time.Hour
	}
	if c.OTP.TTL <= 0 {
		c.OTP.TTL = 5 * time.Minute
	}
	if c.OTP.MaxAttempts < 0 {
		c.OTP.MaxAttempts = 0
	}
	if c.OTP.MismatchPolicy == "" {
		c.OTP.MismatchPolicy = "retry"
	}
	if c.Security.BcryptCost == 0 {
		c.Security.BcryptCost = 10
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	switch c.OTP.MismatchPolicy {
	case "retry", "invalidate":
	default:
		return fmt.Errorf("otp.mismatch_policy must be retry or invalidate, got %q", c.OTP.MismatchPolicy)
	}
	return nil
}
