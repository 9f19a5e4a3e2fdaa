// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"

	"letter-extractor/internal/domain"
	apperrors "letter-extractor/pkg/errors"
)

// multipartMemory is the part of an upload kept in memory while parsing;
// the remainder spills to a temporary file that net/http removes itself.
const multipartMemory = 32 << 20

// ExtractionHandler serves the letter extraction endpoint
type ExtractionHandler struct {
	service     domain.ExtractionService
	maxFileSize int64
	logger      domain.Logger
}

// NewExtractionHandler creates a new extraction handler. maxFileSize <= 0 disables the size limit.
func NewExtractionHandler(service domain.ExtractionService, maxFileSize int64, logger domain.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

type extractResponse struct {
	Data *domain.ExtractionResult `json:"data"`
}

// Extract handles POST /extract with a multipart "file" field
func (h *ExtractionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	requestID, _ := GetRequestIDFromContext(r)

	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAppError(w, apperrors.NewTooLargeError(h.maxFileSize))
			return
		}
		writeAppError(w, apperrors.NewValidationError("invalid multipart form", err.Error()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeAppError(w, apperrors.NewValidationError("file is required"))
		return
	}
	defer file.Close()

	h.logger.Debug("Extraction requested", "request_id", requestID, "filename", header.Filename, "size", header.Size)

	result, err := h.service.Extract(r.Context(), &domain.UploadedDocument{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStaging) || errors.Is(err, domain.ErrInvalidFile) {
			h.logger.Error("Failed to stage upload", err, "request_id", requestID, "filename", header.Filename)
			writeAppError(w, apperrors.NewInternalError(http.StatusText(http.StatusInternalServerError), err))
			return
		}
		h.logger.Error("Extraction failed", err, "request_id", requestID, "filename", header.Filename)
		writeAppError(w, apperrors.NewProviderError(err))
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{Data: result})
}
