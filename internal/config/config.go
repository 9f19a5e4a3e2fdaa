package config

import (
	"os"
	"strconv"
	"time"

	"letter-extractor/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort  string
	StagingDir  string
	MaxFileSize int64
	LogLevel    string
	LogFormat   string
	LogFile     string

	LlamaCloudAPIKey         string
	LlamaCloudBaseURL        string
	LlamaCloudProjectID      string
	LlamaCloudOrganizationID string

	ExtractTimeout        time.Duration
	ExtractPollInterval   time.Duration
	ExtractMaxConcurrency int
}

// NewConfig creates a new configuration instance with default values.
// The API key is not validated here; a missing key surfaces on the first extraction.
func NewConfig() domain.Config {
	return &AppConfig{
		// PaaS hosts provide the listening port via PORT.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8000")),
		StagingDir:  getEnvOrDefault("STAGING_DIR", "temp"),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 0), // 0 = unlimited
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "console"),
		LogFile:     getEnvOrDefault("LOG_FILE", ""),

		LlamaCloudAPIKey:         getEnvOrDefault("LLAMA_CLOUD_API_KEY", ""),
		LlamaCloudBaseURL:        getEnvOrDefault("LLAMA_CLOUD_BASE_URL", "https://api.cloud.llamaindex.ai"),
		LlamaCloudProjectID:      getEnvOrDefault("LLAMA_CLOUD_PROJECT_ID", ""),
		LlamaCloudOrganizationID: getEnvOrDefault("LLAMA_CLOUD_ORGANIZATION_ID", ""),

		ExtractTimeout:        getEnvDurationOrDefault("EXTRACT_TIMEOUT", 2000*time.Second),
		ExtractPollInterval:   getEnvDurationOrDefault("EXTRACT_POLL_INTERVAL", time.Second),
		ExtractMaxConcurrency: int(getEnvInt64OrDefault("EXTRACT_MAX_CONCURRENCY", 0)),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetStagingDir returns the directory used for staging uploads
func (c *AppConfig) GetStagingDir() string {
	return c.StagingDir
}

// GetMaxFileSize returns the maximum allowed upload size, 0 meaning no limit
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log encoder name
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetLogFile returns the optional log file path
func (c *AppConfig) GetLogFile() string {
	return c.LogFile
}

// GetLlamaCloudAPIKey returns the extraction provider API key
func (c *AppConfig) GetLlamaCloudAPIKey() string {
	return c.LlamaCloudAPIKey
}

// GetLlamaCloudBaseURL returns the extraction provider base URL
func (c *AppConfig) GetLlamaCloudBaseURL() string {
	return c.LlamaCloudBaseURL
}

// GetLlamaCloudProjectID returns the optional provider project
func (c *AppConfig) GetLlamaCloudProjectID() string {
	return c.LlamaCloudProjectID
}

// GetLlamaCloudOrganizationID returns the optional provider organization
func (c *AppConfig) GetLlamaCloudOrganizationID() string {
	return c.LlamaCloudOrganizationID
}

// GetExtractTimeout returns the upper bound for one provider extraction
func (c *AppConfig) GetExtractTimeout() time.Duration {
	return c.ExtractTimeout
}

// GetExtractPollInterval returns the delay between job status checks
func (c *AppConfig) GetExtractPollInterval() time.Duration {
	return c.ExtractPollInterval
}

// GetExtractMaxConcurrency returns the in-flight extraction limit, 0 meaning no limit
func (c *AppConfig) GetExtractMaxConcurrency() int {
	return c.ExtractMaxConcurrency
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
