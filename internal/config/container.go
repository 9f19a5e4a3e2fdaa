package config

import (
	"fmt"

	"letter-extractor/internal/domain"
	"letter-extractor/internal/infra/llamacloud"
	"letter-extractor/internal/service"
	"letter-extractor/pkg/logger"
)

// Container holds all application dependencies. Everything in it is built
// once at start and is read-only afterwards.
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	Schema            domain.ExtractionSchema
	ExtractionConfig  domain.ExtractionConfig
	Staging           domain.StagingArea
	Provider          domain.ExtractionProvider
	ExtractionService domain.ExtractionService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	return NewContainerWithConfig(NewConfig())
}

// NewContainerWithConfig wires the application around an existing configuration
func NewContainerWithConfig(config domain.Config) (*Container, error) {
	appLogger := logger.NewLogger(
		config.GetLogLevel(),
		logger.WithFormat(config.GetLogFormat()),
		logger.WithFile(config.GetLogFile()),
	)

	schema := domain.NewExtractionSchema()
	extractionConfig := domain.DefaultExtractionConfig()

	validator, err := service.NewSchemaValidator(schema)
	if err != nil {
		return nil, fmt.Errorf("extraction schema: %w", err)
	}

	staging := service.NewLocalStaging(config.GetStagingDir(), appLogger)

	provider := llamacloud.NewClient(llamacloud.Options{
		BaseURL:        config.GetLlamaCloudBaseURL(),
		APIKey:         config.GetLlamaCloudAPIKey(),
		ProjectID:      config.GetLlamaCloudProjectID(),
		OrganizationID: config.GetLlamaCloudOrganizationID(),
		PollInterval:   config.GetExtractPollInterval(),
		Timeout:        config.GetExtractTimeout(),
	}, appLogger)

	extractionService := service.NewExtractionService(
		staging,
		provider,
		validator,
		schema,
		extractionConfig,
		config.GetExtractMaxConcurrency(),
		appLogger,
	)

	return &Container{
		Config:            config,
		Logger:            appLogger,
		Schema:            schema,
		ExtractionConfig:  extractionConfig,
		Staging:           staging,
		Provider:          provider,
		ExtractionService: extractionService,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetExtractionService returns the extraction gateway
func (c *Container) GetExtractionService() domain.ExtractionService {
	return c.ExtractionService
}
