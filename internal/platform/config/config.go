package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr        string `env:"APP_ADDR" envDefault:":8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	DatabaseURL string `env:"DATABASE_URL"`
	JWTSecret   string `env:"JWT_SECRET"`

	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
	RunSeed       bool   `env:"RUN_SEED" envDefault:"true"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD"`

	Redis struct {
		Addr     string `env:"ADDR" envDefault:"localhost:6379"`
		Password string `env:"PASSWORD"`
		DB       int    `env:"DB" envDefault:"0"`
	} `envPrefix:"REDIS_"`

	AMQP struct {
		URL            string `env:"URL"`
		EmailQueue     string `env:"EMAIL_QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"AMQP_"`

	SMTP struct {
		Host     string `env:"HOST"`
		Port     int    `env:"PORT" envDefault:"587"`
		Username string `env:"USERNAME"`
		Password string `env:"PASSWORD"`
		From     string `env:"FROM" envDefault:"no-reply@example.com"`
	} `envPrefix:"SMTP_"`

	S3 struct {
		Bucket    string `env:"BUCKET"`
		Region    string `env:"REGION" envDefault:"ap-southeast-1"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Endpoint  string `env:"ENDPOINT"`
	} `envPrefix:"S3_"`

	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	MetricsEnabled bool     `env:"METRICS_ENABLED" envDefault:"true"`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"4194304"`

	AccessTokenTTLMinutes int `env:"ACCESS_TOKEN_TTL_MINUTES" envDefault:"720"`
	ResetTokenTTLMinutes  int `env:"RESET_TOKEN_TTL_MINUTES" envDefault:"15"`
}

func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return cfg, aggErr.Errors[0]
		}
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}
