// Package llamacloud implements the extraction provider on the LlamaCloud
// REST API: upload the file, start a stateless extraction job, poll it, then
// fetch its result.
package llamacloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"letter-extractor/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.cloud.llamaindex.ai"
	DefaultPollInterval = time.Second
	maxResponseBytes    = 32 << 20
)

// Job statuses reported by the extraction API.
const (
	StatusPending        = "PENDING"
	StatusSuccess        = "SUCCESS"
	StatusPartialSuccess = "PARTIAL_SUCCESS"
	StatusError          = "ERROR"
	StatusCancelled      = "CANCELLED"
)

// Options configures a Client
type Options struct {
	BaseURL        string
	APIKey         string
	ProjectID      string
	OrganizationID string
	PollInterval   time.Duration
	// Timeout bounds one whole extraction (upload, run, polling, result). Zero disables it.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client implements domain.ExtractionProvider
type Client struct {
	baseURL        string
	apiKey         string
	projectID      string
	organizationID string
	pollInterval   time.Duration
	timeout        time.Duration
	httpClient     *http.Client
	logger         domain.Logger
}

// NewClient creates a new LlamaCloud client. An empty API key is accepted
// here and reported when an extraction is attempted.
func NewClient(opts Options, logger domain.Logger) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:        baseURL,
		apiKey:         opts.APIKey,
		projectID:      opts.ProjectID,
		organizationID: opts.OrganizationID,
		pollInterval:   pollInterval,
		timeout:        opts.Timeout,
		httpClient:     httpClient,
		logger:         logger,
	}
}

type fileResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type runRequest struct {
	DataSchema domain.ExtractionSchema `json:"data_schema"`
	Config     domain.ExtractionConfig `json:"config"`
	FileID     string                  `json:"file_id"`
}

type jobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type resultResponse struct {
	RunID string          `json:"run_id,omitempty"`
	Data  json.RawMessage `json:"data"`
}

// Extract uploads filePath and returns the extracted data object.
func (c *Client) Extract(ctx context.Context, schema domain.ExtractionSchema, config domain.ExtractionConfig, filePath string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, domain.NewProviderErrorf(domain.ProviderErrorAuth,
			"The API key is required. Set the LLAMA_CLOUD_API_KEY environment variable.")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	file, err := c.uploadFile(ctx, filePath)
	if err != nil {
		return nil, err
	}

	job, err := c.runExtraction(ctx, schema, config, file.ID)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Extraction job started", "job_id", job.ID, "file_id", file.ID)

	if err := c.waitForJob(ctx, job); err != nil {
		return nil, err
	}

	var result resultResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/extraction/jobs/"+url.PathEscape(job.ID)+"/result", nil, "", &result); err != nil {
		return nil, err
	}
	if len(result.Data) == 0 || bytes.Equal(result.Data, []byte("null")) {
		return nil, domain.NewProviderErrorf(domain.ProviderErrorMalformed, "extraction job %s returned no data", job.ID)
	}
	return result.Data, nil
}

func (c *Client) uploadFile(ctx context.Context, filePath string) (*fileResponse, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open staged file: %w", err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer f.Close()
		part, err := mw.CreateFormFile("upload_file", filepath.Base(filePath))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	var file fileResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/files", pr, mw.FormDataContentType(), &file); err != nil {
		_ = pr.Close()
		return nil, err
	}
	if file.ID == "" {
		return nil, domain.NewProviderErrorf(domain.ProviderErrorMalformed, "file upload returned no id")
	}
	return &file, nil
}

func (c *Client) runExtraction(ctx context.Context, schema domain.ExtractionSchema, config domain.ExtractionConfig, fileID string) (*jobResponse, error) {
	body, err := json.Marshal(runRequest{DataSchema: schema, Config: config, FileID: fileID})
	if err != nil {
		return nil, domain.NewProviderError(domain.ProviderErrorRejected, fmt.Errorf("encode extraction request: %w", err))
	}

	var job jobResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/extraction/run", bytes.NewReader(body), "application/json", &job); err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, domain.NewProviderErrorf(domain.ProviderErrorMalformed, "extraction run returned no job id")
	}
	return &job, nil
}

func (c *Client) waitForJob(ctx context.Context, job *jobResponse) error {
	for {
		switch job.Status {
		case StatusSuccess, StatusPartialSuccess:
			return nil
		case StatusError, StatusCancelled:
			msg := job.Error
			if msg == "" {
				msg = fmt.Sprintf("extraction job %s finished with status %s", job.ID, job.Status)
			}
			return &domain.ProviderError{Kind: domain.ProviderErrorJobFailed, Message: msg}
		}

		timer := time.NewTimer(c.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return c.contextError(ctx)
		case <-timer.C:
		}

		var next jobResponse
		if err := c.do(ctx, http.MethodGet, "/api/v1/extraction/jobs/"+url.PathEscape(job.ID), nil, "", &next); err != nil {
			return err
		}
		if next.ID == "" {
			next.ID = job.ID
		}
		*job = next
	}
}

// do sends one API request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return domain.NewProviderError(domain.ProviderErrorTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return c.contextError(ctx)
		}
		c.logger.Error("LlamaCloud request failed", err, "method", method, "path", path)
		return domain.NewProviderError(domain.ProviderErrorTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return c.contextError(ctx)
		}
		return domain.NewProviderError(domain.ProviderErrorTransport, err)
	}

	c.logger.Debug("LlamaCloud response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return statusError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.NewProviderError(domain.ProviderErrorMalformed, fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	q := url.Values{}
	if c.projectID != "" {
		q.Set("project_id", c.projectID)
	}
	if c.organizationID != "" {
		q.Set("organization_id", c.organizationID)
	}
	if len(q) == 0 {
		return c.baseURL + path
	}
	return c.baseURL + path + "?" + q.Encode()
}

func (c *Client) contextError(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ProviderError{
			Kind:    domain.ProviderErrorTimeout,
			Message: "Timeout while waiting for extraction job: " + err.Error(),
			Cause:   err,
		}
	}
	return &domain.ProviderError{Kind: domain.ProviderErrorTransport, Message: err.Error(), Cause: err}
}

// statusError maps a non-2xx API response to a ProviderError carrying the
// API's own detail text.
func statusError(status int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			detail = s
		} else {
			detail = string(payload.Detail)
		}
	}
	if detail == "" {
		detail = http.StatusText(status)
	}

	var kind domain.ProviderErrorKind
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = domain.ProviderErrorAuth
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		kind = domain.ProviderErrorTimeout
	case status >= 500:
		kind = domain.ProviderErrorUpstream
	default:
		kind = domain.ProviderErrorRejected
	}

	return &domain.ProviderError{
		Kind:       kind,
		Message:    fmt.Sprintf("status_code: %d, body: %s", status, detail),
		StatusCode: status,
	}
}
