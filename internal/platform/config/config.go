package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the page server and seed import.
type Config struct {
	DBDriver      string
	DBPath        string
	DBDSN         string
	ServerPort    int
	LogLevel      string
	LogFile       string
	SentryDSN     string
	Environment   string
	ShutdownGrace time.Duration

	SiteBaseURL       string
	SitemapDecodeMode string
	SitemapCacheTTL   time.Duration
	RedisURL          string
	JWTSecret         string

	CombinedProfessionLimit int
	CombinedCityLimit       int
	ContentSeed             uint64
	SeedDir                 string

	RateLimit RateLimitConfig
}

// RateLimitConfig configures the per-client HTTP rate limiter.
type RateLimitConfig struct {
	Burst             int
	RequestsPerSecond float64
	ClientTTL         time.Duration
}

const (
	defaultDBDriver          = "sqlite"
	defaultDBPath            = "./data/cartas.db"
	defaultServerPort        = 8080
	defaultLogLevel          = "info"
	defaultEnvironment       = "development"
	defaultShutdownGrace     = 10 * time.Second
	defaultSiteBaseURL       = "https://cartadeapresentacao.pt"
	defaultSitemapDecodeMode = "legacy"
	defaultSitemapCacheTTL   = time.Hour
	defaultCombinedLimit     = 5
	defaultContentSeed       = 1
	defaultRateLimitBurst    = 30
	defaultRateLimitRPS      = 10
	defaultRateLimitTTL      = 10 * time.Minute
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", defaultDBDriver)),
		DBPath:            getEnv("DB_PATH", defaultDBPath),
		DBDSN:             os.Getenv("DB_DSN"),
		LogLevel:          getEnv("LOG_LEVEL", defaultLogLevel),
		LogFile:           os.Getenv("LOG_FILE"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		Environment:       getEnv("ENV", defaultEnvironment),
		ShutdownGrace:     defaultShutdownGrace,
		SiteBaseURL:       getEnv("SITE_BASE_URL", defaultSiteBaseURL),
		SitemapDecodeMode: strings.ToLower(getEnv("SITEMAP_DECODE_MODE", defaultSitemapDecodeMode)),
		RedisURL:          os.Getenv("REDIS_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SeedDir:           os.Getenv("SEED_DIR"),
	}

	var err error
	if cfg.ServerPort, err = getInt("SERVER_PORT", defaultServerPort); err != nil {
		return nil, err
	}
	if cfg.SitemapCacheTTL, err = getDuration("SITEMAP_CACHE_TTL", defaultSitemapCacheTTL); err != nil {
		return nil, err
	}
	if cfg.CombinedProfessionLimit, err = getInt("COMBINED_PROFESSION_LIMIT", defaultCombinedLimit); err != nil {
		return nil, err
	}
	if cfg.CombinedCityLimit, err = getInt("COMBINED_CITY_LIMIT", defaultCombinedLimit); err != nil {
		return nil, err
	}

	seedValue := getEnv("CONTENT_SEED", strconv.Itoa(defaultContentSeed))
	if cfg.ContentSeed, err = strconv.ParseUint(seedValue, 10, 64); err != nil {
		return nil, eris.Wrapf(err, "invalid CONTENT_SEED value: %s", seedValue)
	}

	if cfg.RateLimit.Burst, err = getInt("RATE_LIMIT_BURST", defaultRateLimitBurst); err != nil {
		return nil, err
	}
	rpsValue := getEnv("RATE_LIMIT_RPS", strconv.Itoa(defaultRateLimitRPS))
	if cfg.RateLimit.RequestsPerSecond, err = strconv.ParseFloat(rpsValue, 64); err != nil {
		return nil, eris.Wrapf(err, "invalid RATE_LIMIT_RPS value: %s", rpsValue)
	}
	if cfg.RateLimit.ClientTTL, err = getDuration("RATE_LIMIT_CLIENT_TTL", defaultRateLimitTTL); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "validating configuration")
	}

	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DBDriver, validation.Required, validation.In("sqlite", "postgres", "mysql")),
		validation.Field(&c.DBPath, validation.When(c.DBDriver == "sqlite", validation.Required)),
		validation.Field(&c.DBDSN, validation.When(c.DBDriver != "sqlite", validation.Required.Error("is required for server databases"))),
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.SiteBaseURL, validation.Required),
		validation.Field(&c.SitemapDecodeMode, validation.In("legacy", "structured")),
		validation.Field(&c.SitemapCacheTTL, validation.Min(time.Duration(0))),
		validation.Field(&c.CombinedProfessionLimit, validation.Min(0)),
		validation.Field(&c.CombinedCityLimit, validation.Min(0)),
		validation.Field(&c.RateLimit),
	)
}

// Validate checks the limiter settings are usable.
func (r RateLimitConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Burst, validation.Required, validation.Min(1)),
		validation.Field(&r.RequestsPerSecond, validation.Required, validation.Min(0.001)),
		validation.Field(&r.ClientTTL, validation.Required, validation.Min(time.Second)),
	)
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := getEnv(key, strconv.Itoa(fallback))
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, value)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, fallback.String())
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, value)
	}
	return parsed, nil
}
