package cfg

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load([]string{"--content-api-url", "https://api.example.com/v1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.ContentAPIURL != "https://api.example.com/v1" {
		t.Errorf("Expected content API URL 'https://api.example.com/v1', got '%s'", cfg.ContentAPIURL)
	}
	if cfg.CacheBackend != CacheBackendSQLite {
		t.Errorf("Expected cache backend 'sqlite', got '%s'", cfg.CacheBackend)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SnapshotTTLDuration() != time.Minute {
		t.Errorf("Expected snapshot ttl 1m, got %v", cfg.SnapshotTTLDuration())
	}
	if cfg.MaintenanceIntervalDuration() != time.Minute {
		t.Errorf("Expected maintenance interval 1m, got %v", cfg.MaintenanceIntervalDuration())
	}
	if cfg.RequestTimeoutDuration() != 30*time.Second {
		t.Errorf("Expected request timeout 30s, got %v", cfg.RequestTimeoutDuration())
	}
	if cfg.MaintenanceEndsAt != "" {
		t.Errorf("Expected no maintenance window, got '%s'", cfg.MaintenanceEndsAt)
	}
	if cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("Expected info log level, got %v", cfg.LogLevel())
	}

	if Get() != cfg {
		t.Error("Expected Get to return the loaded configuration")
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load([]string{
		"--content-api-url", "https://api.example.com",
		"--cache-backend", "redis",
		"--redis-addr", "cache:6379",
		"--worker-count", "7",
		"--snapshot-ttl", "0",
		"--maintenance-ends-at", "2025-06-01T14:00:00Z",
		"--api-key", "secret",
		"--debug",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.CacheBackend != CacheBackendRedis || cfg.RedisAddr != "cache:6379" {
		t.Errorf("Unexpected cache settings: %s %s", cfg.CacheBackend, cfg.RedisAddr)
	}
	if cfg.WorkerCount != 7 {
		t.Errorf("Expected worker count 7, got %d", cfg.WorkerCount)
	}
	if cfg.SnapshotTTL != 0 {
		t.Errorf("Expected snapshot ttl 0, got %d", cfg.SnapshotTTL)
	}
	if cfg.MaintenanceEndsAt != "2025-06-01T14:00:00Z" {
		t.Errorf("Unexpected maintenance end '%s'", cfg.MaintenanceEndsAt)
	}
	if cfg.APIAccessKey != "secret" {
		t.Errorf("Expected API key 'secret', got '%s'", cfg.APIAccessKey)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("Expected debug log level, got %v", cfg.LogLevel())
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"missing content API URL", []string{}, "content-api-url"},
		{"unknown backend", []string{"--content-api-url", "https://a", "--cache-backend", "memcached"}, "cache-backend"},
		{"zero workers", []string{"--content-api-url", "https://a", "--worker-count", "0"}, "worker count must be positive"},
		{"negative ttl", []string{"--content-api-url", "https://a", "--snapshot-ttl=-1"}, "snapshot ttl must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.args)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected error containing '%s', got '%s'", tt.expected, err.Error())
			}
		})
	}
}

func TestLoadHelp(t *testing.T) {
	cfg, err := load([]string{"--help"})
	if err != nil || cfg != nil {
		t.Errorf("Expected (nil, nil) for --help, got (%v, %v)", cfg, err)
	}
}
