package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"letter-extractor/internal/domain"

	"golang.org/x/sync/semaphore"
)

// ExtractionService stages an upload, runs the provider extraction and
// always removes the staged file before returning.
type ExtractionService struct {
	staging   domain.StagingArea
	provider  domain.ExtractionProvider
	validator *SchemaValidator
	schema    domain.ExtractionSchema
	config    domain.ExtractionConfig
	slots     *semaphore.Weighted
	logger    domain.Logger
}

// NewExtractionService wires the gateway. maxConcurrent <= 0 disables the in-flight limit.
func NewExtractionService(
	staging domain.StagingArea,
	provider domain.ExtractionProvider,
	validator *SchemaValidator,
	schema domain.ExtractionSchema,
	config domain.ExtractionConfig,
	maxConcurrent int,
	logger domain.Logger,
) *ExtractionService {
	var slots *semaphore.Weighted
	if maxConcurrent > 0 {
		slots = semaphore.NewWeighted(int64(maxConcurrent))
	}
	return &ExtractionService{
		staging:   staging,
		provider:  provider,
		validator: validator,
		schema:    schema,
		config:    config,
		slots:     slots,
		logger:    logger,
	}
}

func (s *ExtractionService) Extract(ctx context.Context, doc *domain.UploadedDocument) (*domain.ExtractionResult, error) {
	staged, err := s.staging.Stage(doc)
	if err != nil {
		return nil, err
	}
	defer s.cleanup(staged)

	if s.slots != nil {
		if err := s.slots.Acquire(ctx, 1); err != nil {
			return nil, domain.NewProviderError(domain.ProviderErrorTimeout, err)
		}
		defer s.slots.Release(1)
	}

	start := time.Now()
	raw, err := s.provider.Extract(ctx, s.schema, s.config, staged.Path)
	if err != nil {
		kind, _ := domain.ProviderKind(err)
		s.logger.Error("Extraction failed", err,
			"filename", doc.Filename,
			"kind", kind,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	if err := s.validator.Validate(raw); err != nil {
		s.logger.Warn("Provider returned data outside the schema", "filename", doc.Filename, "error", err)
		return nil, &domain.ProviderError{Kind: domain.ProviderErrorMalformed, Message: err.Error(), Cause: err}
	}

	var result domain.ExtractionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &domain.ProviderError{
			Kind:    domain.ProviderErrorMalformed,
			Message: err.Error(),
			Cause:   errors.Join(domain.ErrSchemaMismatch, err),
		}
	}

	s.logger.Info("Extraction completed",
		"filename", doc.Filename,
		"bytes", staged.Size,
		"importance", result.Importance,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &result, nil
}

func (s *ExtractionService) cleanup(staged *domain.StagedFile) {
	if err := s.staging.Remove(staged); err != nil {
		s.logger.Warn("Failed to remove staged upload", "path", staged.Path, "error", err)
	}
}
