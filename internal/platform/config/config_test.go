package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_DRIVER", "DB_PATH", "DB_DSN", "SERVER_PORT", "LOG_LEVEL", "ENV",
		"SITE_BASE_URL", "SITEMAP_DECODE_MODE", "SITEMAP_CACHE_TTL", "CONTENT_SEED",
		"COMBINED_PROFESSION_LIMIT", "COMBINED_CITY_LIMIT",
		"RATE_LIMIT_BURST", "RATE_LIMIT_RPS", "RATE_LIMIT_CLIENT_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBDriver != "sqlite" || cfg.DBPath != "./data/cartas.db" {
		t.Fatalf("unexpected database defaults %q %q", cfg.DBDriver, cfg.DBPath)
	}
	if cfg.ServerPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.ServerPort)
	}
	if cfg.SiteBaseURL != "https://cartadeapresentacao.pt" {
		t.Fatalf("unexpected base url %q", cfg.SiteBaseURL)
	}
	if cfg.SitemapDecodeMode != "legacy" {
		t.Fatalf("expected legacy decode mode, got %q", cfg.SitemapDecodeMode)
	}
	if cfg.SitemapCacheTTL != time.Hour {
		t.Fatalf("expected 1h cache ttl, got %s", cfg.SitemapCacheTTL)
	}
	if cfg.CombinedProfessionLimit != 5 || cfg.CombinedCityLimit != 5 {
		t.Fatalf("unexpected combined limits %d x %d", cfg.CombinedProfessionLimit, cfg.CombinedCityLimit)
	}
	if cfg.ContentSeed != 1 {
		t.Fatalf("expected content seed 1, got %d", cfg.ContentSeed)
	}
	if cfg.RateLimit.Burst != 30 || cfg.RateLimit.RequestsPerSecond != 10 || cfg.RateLimit.ClientTTL != 10*time.Minute {
		t.Fatalf("unexpected rate limit defaults %#v", cfg.RateLimit)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://localhost/cartas")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SITEMAP_DECODE_MODE", "structured")
	t.Setenv("SITEMAP_CACHE_TTL", "15m")
	t.Setenv("CONTENT_SEED", "42")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBDriver != "postgres" {
		t.Fatalf("expected lower-cased driver, got %q", cfg.DBDriver)
	}
	if cfg.ServerPort != 9090 || cfg.SitemapCacheTTL != 15*time.Minute {
		t.Fatalf("unexpected overrides %d %s", cfg.ServerPort, cfg.SitemapCacheTTL)
	}
	if cfg.SitemapDecodeMode != "structured" || cfg.ContentSeed != 42 {
		t.Fatalf("unexpected decode mode %q or seed %d", cfg.SitemapDecodeMode, cfg.ContentSeed)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Fatalf("expected 2.5 rps, got %v", cfg.RateLimit.RequestsPerSecond)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"port not a number":   {"SERVER_PORT": "eighty"},
		"port out of range":   {"SERVER_PORT": "70000"},
		"unknown driver":      {"DB_DRIVER": "oracle"},
		"server db no dsn":    {"DB_DRIVER": "mysql", "DB_DSN": ""},
		"unknown decode mode": {"SITEMAP_DECODE_MODE": "fancy"},
		"bad ttl":             {"SITEMAP_CACHE_TTL": "soon"},
		"negative seed":       {"CONTENT_SEED": "-1"},
		"zero burst":          {"RATE_LIMIT_BURST": "0"},
		"zero rps":            {"RATE_LIMIT_RPS": "0"},
		"zero client ttl":     {"RATE_LIMIT_CLIENT_TTL": "0s"},
		"zero port":           {"SERVER_PORT": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for key, value := range env {
				t.Setenv(key, value)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}

func TestRateLimitConfigRejectsZeroValues(t *testing.T) {
	t.Parallel()

	valid := RateLimitConfig{Burst: 30, RequestsPerSecond: 10, ClientTTL: 10 * time.Minute}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	cases := map[string]func(*RateLimitConfig){
		"burst":      func(r *RateLimitConfig) { r.Burst = 0 },
		"rps":        func(r *RateLimitConfig) { r.RequestsPerSecond = 0 },
		"client ttl": func(r *RateLimitConfig) { r.ClientTTL = 0 },
	}
	for name, mutate := range cases {
		candidate := valid
		mutate(&candidate)
		if err := candidate.Validate(); err == nil {
			t.Fatalf("expected error for zero %s", name)
		}
	}
}
