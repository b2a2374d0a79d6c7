package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	GinMode  string `envconfig:"GIN_MODE" default:"release"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`

	// Answers not-found and conflict with 401 for older clients.
	LegacyStatusCodes bool `envconfig:"LEGACY_STATUS_CODES" default:"false"`

	// DB
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"daily_diet"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`

	// Redis stats cache, disabled when RedisAddr is empty
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	StatsCacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"10m"`

	// AWS
	AWSRegion       string `envconfig:"AWS_REGION" default:"us-east-1"`
	S3Region        string `envconfig:"S3_REGION"`
	S3Bucket        string `envconfig:"S3_BUCKET"`
	CloudFrontURL   string `envconfig:"CLOUDFRONT_URL"`
	SNSMealTopicARN string `envconfig:"SNS_MEAL_TOPIC_ARN"`

	// JWT, mutating routes are open when the secret is empty
	AuthJWTSecret string        `envconfig:"AUTH_JWT_SECRET"`
	AuthJWTTTL    time.Duration `envconfig:"AUTH_JWT_TTL" default:"72h"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("process env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.S3Bucket != "" && c.CloudFrontURL == "" {
		return errors.New("CLOUDFRONT_URL is required when S3_BUCKET is set")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	return nil
}

// DSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (c Config) DSN() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) S3RegionOrDefault() string {
	if c.S3Region != "" {
		return c.S3Region
	}
	return c.AWSRegion
}
