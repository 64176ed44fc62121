package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/platinummonkey/scanproof/internal/logger"
)

const (
	// DefaultOllamaEndpoint is the default Ollama API endpoint
	DefaultOllamaEndpoint = "http://localhost:11434"

	// DefaultOllamaTimeout is the default HTTP client timeout. Vision
	// inference on local hardware is slow.
	DefaultOllamaTimeout = 5 * time.Minute

	// DefaultMaxRetries is the default number of retries
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the initial delay between retries
	DefaultRetryDelay = 1 * time.Second
)

// OllamaClient implements Client against a local Ollama instance
type OllamaClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *logger.Logger
	maxRetries int
	retryDelay time.Duration
	prompt     string
}

// OllamaOption is a function that configures an OllamaClient
type OllamaOption func(*OllamaClient)

// WithEndpoint sets the Ollama API endpoint
func WithEndpoint(endpoint string) OllamaOption {
	return func(c *OllamaClient) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) OllamaOption {
	return func(c *OllamaClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) OllamaOption {
	return func(c *OllamaClient) {
		c.logger = log
	}
}

// WithMaxRetries sets the maximum number of retries
func WithMaxRetries(maxRetries int) OllamaOption {
	return func(c *OllamaClient) {
		c.maxRetries = maxRetries
	}
}

// WithRetryDelay sets the initial retry delay
func WithRetryDelay(delay time.Duration) OllamaOption {
	return func(c *OllamaClient) {
		c.retryDelay = delay
	}
}

// WithPrompt overrides the default analysis prompt
func WithPrompt(prompt string) OllamaOption {
	return func(c *OllamaClient) {
		c.prompt = prompt
	}
}

// NewOllamaClient creates a new Ollama vision client
func NewOllamaClient(opts ...OllamaOption) *OllamaClient {
	client := &OllamaClient{
		endpoint: DefaultOllamaEndpoint,
		httpClient: &http.Client{
			Timeout: DefaultOllamaTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:     logger.Get(),
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// GenerateRequest is the request body for /api/generate
type GenerateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Stream bool     `json:"stream"`
	Format string   `json:"format,omitempty"`
}

// GenerateResponse is the response body from /api/generate
type GenerateResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ErrorResponse is the error body returned by the Ollama API
type ErrorResponse struct {
	Error string `json:"error"`
}

// ModelInfo describes one locally available model
type ModelInfo struct {
	Name       string `json:"name"`
	ModifiedAt string `json:"modified_at,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

// ListModelsResponse is the response body from /api/tags
type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// PullRequest is the request body for /api/pull
type PullRequest struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

// PullResponse is the response body from /api/pull
type PullResponse struct {
	Status string `json:"status"`
}

// doRequest performs an HTTP request with retry logic
func (c *OllamaClient) doRequest(ctx context.Context, method, path string, body interface{}, response interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1)) // exponential backoff
			c.logger.Debugf("Retrying request (attempt %d/%d) after %v", attempt, c.maxRetries, delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		var reqBody io.Reader
		if body != nil {
			jsonData, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("failed to marshal request body: %w", err)
			}
			reqBody = bytes.NewReader(jsonData)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to execute request: %w", err)
			c.logger.Debugf("Request failed: %v", lastErr)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			c.logger.Debugf("Failed to read response: %v", lastErr)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var errResp ErrorResponse
			var errMsg string
			if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
				errMsg = fmt.Sprintf("ollama API error (status %d): %s", resp.StatusCode, errResp.Error)
			} else {
				errMsg = fmt.Sprintf("ollama API error (status %d): %s", resp.StatusCode, string(respBody))
			}

			// 5xx server errors retry, 4xx client errors return immediately
			if resp.StatusCode >= 500 {
				lastErr = errors.New(errMsg)
				c.logger.Debugf("Server error: %v", lastErr)
				continue
			}
			return errors.New(errMsg)
		}

		if response != nil {
			if err := json.Unmarshal(respBody, response); err != nil {
				return fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}

		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Generate sends a generation request to Ollama
func (c *OllamaClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	var resp GenerateResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/generate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Analyze extracts text and issues from a base64-encoded image
func (c *OllamaClient) Analyze(ctx context.Context, model string, imageData string) (*Analysis, error) {
	c.logger.WithFields("model", model, "provider", "ollama").Debug("Analyzing image with Ollama")

	resp, err := c.Generate(ctx, &GenerateRequest{
		Model:  model,
		Prompt: promptOrDefault(c.prompt),
		Images: []string{imageData},
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to analyze image: %w", err)
	}

	analysis := ParseAnalysis(resp.Response, c.logger)
	c.logger.WithFields("issues", len(analysis.Issues), "text_length", len(analysis.ExtractedText)).Debug("Ollama analysis completed")
	return analysis, nil
}

// ListModels lists locally available models
func (c *OllamaClient) ListModels(ctx context.Context) (*ListModelsResponse, error) {
	var resp ListModelsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/tags", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PullModel downloads a model if it's not already available
func (c *OllamaClient) PullModel(ctx context.Context, modelName string) error {
	req := &PullRequest{
		Name:   modelName,
		Stream: false,
	}
	var resp PullResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/pull", req, &resp); err != nil {
		return err
	}
	c.logger.Infof("Model pull status: %s", resp.Status)
	return nil
}

// HealthCheck verifies that Ollama is running and the model is available,
// pulling the model when it's missing
func (c *OllamaClient) HealthCheck(ctx context.Context, model string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama is not accessible: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health check failed with status: %d", resp.StatusCode)
	}

	models, err := c.ListModels(ctx)
	if err != nil {
		return err
	}

	for _, m := range models.Models {
		if m.Name == model || m.Name == model+":latest" {
			return nil
		}
	}

	c.logger.WithFields("model", model).Info("Model not found, pulling...")
	return c.PullModel(ctx, model)
}

// Name returns the provider name
func (c *OllamaClient) Name() string {
	return "ollama"
}

// SupportedModels returns a list of commonly used Ollama vision models
func (c *OllamaClient) SupportedModels() []string {
	return []string{
		"llava",
		"llava:7b",
		"llava:13b",
		"llava:34b",
		"bakllava",
		"llava-llama3",
		"llava-phi3",
		"moondream",
	}
}
