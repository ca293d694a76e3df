package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type CartConfig struct {
	TTL string `yaml:"ttl"`
}

type VerificationConfig struct {
	TTL         string `yaml:"ttl"`
	Length      int    `yaml:"length"`
	MaxAttempts int    `yaml:"max_attempts"`
	VerifiedTTL string `yaml:"verified_ttl"`
	RateWindow  string `yaml:"rate_window"`
	RateLimit   int    `yaml:"rate_limit"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type MessagesConfig struct {
	Path          string `yaml:"path"`
	DefaultLocale string `yaml:"default_locale"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Cart         CartConfig         `yaml:"cart"`
	Verification VerificationConfig `yaml:"verification"`
	Twilio       TwilioConfig       `yaml:"twilio"`
	Casbin       CasbinConfig       `yaml:"casbin"`
	Messages     MessagesConfig     `yaml:"messages"`
}

type Config struct {
	Port          string
	GinMode       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	AccessTTL time.Duration

	CartTTL time.Duration

	VerificationTTL         time.Duration
	VerificationLength      int
	VerificationMaxAttempts int
	VerifiedTTL             time.Duration
	RateWindow              time.Duration
	RateLimit               int

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	CasbinModelPath string

	MessagesPath  string
	DefaultLocale string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	cartTTL, err := time.ParseDuration(configFile.Cart.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid cart TTL: %w", err)
	}

	verTTL, err := time.ParseDuration(configFile.Verification.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification TTL: %w", err)
	}

	// Optional; the verification service falls back to its default window.
	var verifiedTTL time.Duration
	if configFile.Verification.VerifiedTTL != "" {
		verifiedTTL, err = time.ParseDuration(configFile.Verification.VerifiedTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid verified window TTL: %w", err)
		}
	}

	rateWindow, err := time.ParseDuration(configFile.Verification.RateWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid verification rate window: %w", err)
	}

	return &Config{
		Port:          fmt.Sprintf("%d", configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		JWTSecret: env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer: configFile.JWT.Issuer,
		AccessTTL: accTTL,

		CartTTL: cartTTL,

		VerificationTTL:         verTTL,
		VerificationLength:      configFile.Verification.Length,
		VerificationMaxAttempts: configFile.Verification.MaxAttempts,
		VerifiedTTL:             verifiedTTL,
		RateWindow:              rateWindow,
		RateLimit:               configFile.Verification.RateLimit,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:  env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),

		CasbinModelPath: configFile.Casbin.ModelPath,

		MessagesPath:  configFile.Messages.Path,
		DefaultLocale: configFile.Messages.DefaultLocale,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
