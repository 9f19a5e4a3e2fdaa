package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_PORT", "STAGING_DIR", "MAX_FILE_SIZE", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
		"LLAMA_CLOUD_API_KEY", "LLAMA_CLOUD_BASE_URL", "LLAMA_CLOUD_PROJECT_ID", "LLAMA_CLOUD_ORGANIZATION_ID",
		"EXTRACT_TIMEOUT", "EXTRACT_POLL_INTERVAL", "EXTRACT_MAX_CONCURRENCY",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8000" {
		t.Fatalf("expected default server port 8000, got %s", cfg.GetServerPort())
	}
	if cfg.GetStagingDir() != "temp" {
		t.Fatalf("expected default staging dir temp, got %s", cfg.GetStagingDir())
	}
	if cfg.GetMaxFileSize() != 0 {
		t.Fatalf("expected unlimited file size, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetLogFormat() != "console" {
		t.Fatalf("expected default log format console, got %s", cfg.GetLogFormat())
	}
	if cfg.GetLlamaCloudAPIKey() != "" {
		t.Fatalf("expected empty api key, got %s", cfg.GetLlamaCloudAPIKey())
	}
	if cfg.GetLlamaCloudBaseURL() != "https://api.cloud.llamaindex.ai" {
		t.Fatalf("unexpected default base url %s", cfg.GetLlamaCloudBaseURL())
	}
	if cfg.GetExtractTimeout() != 2000*time.Second {
		t.Fatalf("expected default timeout 2000s, got %s", cfg.GetExtractTimeout())
	}
	if cfg.GetExtractPollInterval() != time.Second {
		t.Fatalf("expected default poll interval 1s, got %s", cfg.GetExtractPollInterval())
	}
	if cfg.GetExtractMaxConcurrency() != 0 {
		t.Fatalf("expected unlimited concurrency, got %d", cfg.GetExtractMaxConcurrency())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("STAGING_DIR", "/tmp/staging")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LLAMA_CLOUD_API_KEY", "llx-test")
	t.Setenv("LLAMA_CLOUD_BASE_URL", "http://localhost:9999")
	t.Setenv("LLAMA_CLOUD_PROJECT_ID", "proj-1")
	t.Setenv("EXTRACT_TIMEOUT", "90s")
	t.Setenv("EXTRACT_POLL_INTERVAL", "250ms")
	t.Setenv("EXTRACT_MAX_CONCURRENCY", "4")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetStagingDir() != "/tmp/staging" {
		t.Fatalf("expected staging dir override, got %s", cfg.GetStagingDir())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" || cfg.GetLogFormat() != "json" {
		t.Fatalf("unexpected log settings %s/%s", cfg.GetLogLevel(), cfg.GetLogFormat())
	}
	if cfg.GetLlamaCloudAPIKey() != "llx-test" {
		t.Fatalf("expected api key llx-test, got %s", cfg.GetLlamaCloudAPIKey())
	}
	if cfg.GetLlamaCloudBaseURL() != "http://localhost:9999" {
		t.Fatalf("expected base url override, got %s", cfg.GetLlamaCloudBaseURL())
	}
	if cfg.GetLlamaCloudProjectID() != "proj-1" {
		t.Fatalf("expected project proj-1, got %s", cfg.GetLlamaCloudProjectID())
	}
	if cfg.GetExtractTimeout() != 90*time.Second {
		t.Fatalf("expected timeout 90s, got %s", cfg.GetExtractTimeout())
	}
	if cfg.GetExtractPollInterval() != 250*time.Millisecond {
		t.Fatalf("expected poll interval 250ms, got %s", cfg.GetExtractPollInterval())
	}
	if cfg.GetExtractMaxConcurrency() != 4 {
		t.Fatalf("expected concurrency 4, got %d", cfg.GetExtractMaxConcurrency())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("EXTRACT_TIMEOUT", "soon")
	t.Setenv("EXTRACT_POLL_INTERVAL", "-1s")
	t.Setenv("EXTRACT_MAX_CONCURRENCY", "-3")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 0 {
		t.Fatalf("expected default max file size, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetExtractTimeout() != 2000*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.GetExtractTimeout())
	}
	if cfg.GetExtractPollInterval() != time.Second {
		t.Fatalf("expected default poll interval, got %s", cfg.GetExtractPollInterval())
	}
	if cfg.GetExtractMaxConcurrency() != 0 {
		t.Fatalf("expected default concurrency, got %d", cfg.GetExtractMaxConcurrency())
	}
}
