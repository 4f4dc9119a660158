package config

import (
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads so host values cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY", "SWAGGER_ENABLED",
		"API_BASE_PATH", "APP_ENV", "DB_PATH", "BUILDINGS_PATH", "ADMIN_PASSWORD",
		"GROUPME_API_URL", "GROUPME_IMAGE_URL", "GROUPME_ACCESS_TOKEN",
		"DISPATCH_CONCURRENCY", "DISPATCH_SEND_TIMEOUT", "RATE_RPS", "RATE_BURST",
		"CORS_ALLOWED_ORIGINS", "ENABLE_HSTS", "HSTS_MAX_AGE",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE",
		"OTEL_SERVICE_NAME", "OTEL_TRACES_SAMPLER_ARG",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" || cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("server defaults wrong: %+v", cfg)
	}
	if cfg.APIBasePath != "/api" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.AppEnv != "dev" || cfg.DBPath != "" || cfg.BuildingsPath != "data/buildings.json" {
		t.Fatalf("app defaults wrong: %+v", cfg)
	}
	if cfg.GroupMe.APIBaseURL != "https://api.groupme.com/v3" {
		t.Fatalf("GroupMe API URL = %q", cfg.GroupMe.APIBaseURL)
	}
	if cfg.GroupMe.ImageURL != "https://image.groupme.com/pictures" {
		t.Fatalf("GroupMe image URL = %q", cfg.GroupMe.ImageURL)
	}
	if cfg.Dispatch.Concurrency != 8 || cfg.Dispatch.SendTimeout != 10*time.Second {
		t.Fatalf("dispatch defaults wrong: %+v", cfg.Dispatch)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate defaults wrong: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "PROD")
	t.Setenv("DB_PATH", "/tmp/relay.db")
	t.Setenv("DISPATCH_CONCURRENCY", "3")
	t.Setenv("DISPATCH_SEND_TIMEOUT", "5s")
	t.Setenv("API_BASE_PATH", "api/v2/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.AppEnv != "prod" {
		t.Fatalf("AppEnv = %q; env tag must be lowercased", cfg.AppEnv)
	}
	if cfg.DBPath != "/tmp/relay.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Dispatch.Concurrency != 3 || cfg.Dispatch.SendTimeout != 5*time.Second {
		t.Fatalf("dispatch = %+v", cfg.Dispatch)
	}
	if cfg.APIBasePath != "/api/v2" {
		t.Fatalf("APIBasePath = %q; want normalized /api/v2", cfg.APIBasePath)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORS = %+v", cfg.CORS)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero concurrency", "DISPATCH_CONCURRENCY", "0"},
		{"negative rps", "RATE_RPS", "-1"},
		{"zero burst", "RATE_BURST", "0"},
		{"sample ratio out of range", "OTEL_TRACES_SAMPLER_ARG", "1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestLoad_WarningAliasesToWarn(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warning")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api":    "/api",
		"/api/":   "/api",
		"api/v1/": "/api/v1",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestGetBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("SWAGGER_ENABLED", "yes")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("SWAGGER_ENABLED=yes should enable swagger")
	}
}
