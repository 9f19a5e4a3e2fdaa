package config

import (
	"testing"
	"time"
)

func TestNewContainerWithConfig(t *testing.T) {
	cfg := &AppConfig{
		ServerPort:          "8000",
		StagingDir:          t.TempDir(),
		LogLevel:            "error",
		LogFormat:           "console",
		LlamaCloudBaseURL:   "http://localhost:1",
		ExtractTimeout:      time.Second,
		ExtractPollInterval: time.Millisecond,
	}

	container, err := NewContainerWithConfig(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if container.GetConfig() != cfg {
		t.Fatalf("expected config to be kept")
	}
	if container.GetLogger() == nil || container.GetExtractionService() == nil {
		t.Fatalf("expected logger and extraction service to be wired")
	}
	if container.Provider == nil || container.Staging == nil {
		t.Fatalf("expected provider and staging to be wired")
	}
	if container.ExtractionConfig.ExtractionMode != "PREMIUM" {
		t.Fatalf("expected default extraction config, got %+v", container.ExtractionConfig)
	}
	if _, ok := container.Schema["properties"]; !ok {
		t.Fatalf("expected extraction schema")
	}
}
