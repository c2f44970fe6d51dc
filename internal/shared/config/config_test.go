package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "CORS_ALLOW_ORIGINS",
		"RESUME_API_KEY", "RESUME_API_BASE_URL",
		"OPTIMIZE_RATE_PER_SEC", "OPTIMIZE_RATE_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("unexpected env %q", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, []string{"http://localhost:5173"}) {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowOrigin)
	}
	if cfg.OptimizeRatePerSec != 0 || cfg.OptimizeRateBurst != 0 {
		t.Fatalf("expected rate limiting disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENV", "Production")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("RESUME_API_KEY", "key")
	t.Setenv("RESUME_API_BASE_URL", "https://api.example.com")
	t.Setenv("OPTIMIZE_RATE_PER_SEC", "2.5")
	t.Setenv("OPTIMIZE_RATE_BURST", "10")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("unexpected env %q", cfg.Env)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, want) {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowOrigin)
	}
	if cfg.ResumeAPIKey != "key" || cfg.ResumeAPIBaseURL != "https://api.example.com" {
		t.Fatalf("unexpected resume api config %+v", cfg)
	}
	if cfg.OptimizeRatePerSec != 2.5 || cfg.OptimizeRateBurst != 10 {
		t.Fatalf("unexpected rate config %+v", cfg)
	}
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("OPTIMIZE_RATE_PER_SEC", "not-a-number")
	t.Setenv("OPTIMIZE_RATE_BURST", "nope")

	cfg := Load()

	if cfg.OptimizeRatePerSec != 0 || cfg.OptimizeRateBurst != 0 {
		t.Fatalf("expected defaults for unparseable values, got %+v", cfg)
	}
}
