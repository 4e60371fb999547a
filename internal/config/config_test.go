package config

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "host=localhost user=test password=test dbname=test port=5432 sslmode=disable")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CRON_SECRET", "cron-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", cfg.APIPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.AppURL != "http://localhost:3000" {
		t.Errorf("AppURL = %s, want http://localhost:3000", cfg.AppURL)
	}
	if cfg.KakaoSendLimitPerSec != 5 {
		t.Errorf("KakaoSendLimitPerSec = %d, want 5", cfg.KakaoSendLimitPerSec)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAKAO_CLIENT_ID", "client-id")
	t.Setenv("KAKAO_SEND_LIMIT_PER_SEC", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", cfg.APIPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.KakaoClientID != "client-id" {
		t.Errorf("KakaoClientID = %s, want client-id", cfg.KakaoClientID)
	}
	if cfg.KakaoSendLimitPerSec != 2 {
		t.Errorf("KakaoSendLimitPerSec = %d, want 2", cfg.KakaoSendLimitPerSec)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=localhost")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required env vars, got nil")
	}
}

func TestLoad_KakaoOptional(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.KakaoClientID != "" || cfg.KakaoClientSecret != "" || cfg.KakaoRedirectURI != "" {
		t.Error("kakao settings should default to empty")
	}
}
