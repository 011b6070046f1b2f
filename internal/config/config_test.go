package config

import (
	"testing"
	"time"

	"github.com/fleague/fleague-api/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected default env %q, got %q", EnvDev, cfg.AppEnv)
	}
	if cfg.ServiceName != "fleague-api" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Fatalf("unexpected read timeout %v", cfg.ReadTimeout)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.SweepWorkers != 8 {
		t.Fatalf("unexpected sweep workers %d", cfg.SweepWorkers)
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for invalid APP_ENV")
	}
}

func TestLoad_CORSList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSN(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when UPTRACE_ENABLED without DSN")
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	got := parseUptraceDSNFromOTLPHeaders(`uptrace-dsn="https://token@api.uptrace.dev/123"`)
	if got != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if parseUptraceDSNFromOTLPHeaders("authorization=Bearer x") != "" {
		t.Fatal("expected empty dsn for unrelated headers")
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("debug") != logging.LevelDebug {
		t.Fatal("expected debug level")
	}
	if parseLogLevel("WARNING") != logging.LevelWarn {
		t.Fatal("expected warn level")
	}
	if parseLogLevel("nonsense") != logging.LevelInfo {
		t.Fatal("expected info fallback")
	}
}
