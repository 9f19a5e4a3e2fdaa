package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetStagingDir() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetLogFile() string
	GetLlamaCloudAPIKey() string
	GetLlamaCloudBaseURL() string
	GetLlamaCloudProjectID() string
	GetLlamaCloudOrganizationID() string
	GetExtractTimeout() time.Duration
	GetExtractPollInterval() time.Duration
	GetExtractMaxConcurrency() int
}
