// Package vision provides the OCR/analysis collaborator: vision-capable LLM
// clients that extract text from an image and report detected issues.
package vision

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/platinummonkey/scanproof/internal/issue"
)

// Analysis is the structured result of a vision analysis call
type Analysis struct {
	// ExtractedText is the full text read from the image
	ExtractedText string `json:"extracted_text"`

	// Issues are the discrepancies the model detected, raw and unvalidated
	Issues []issue.Raw `json:"issues"`
}

// Client is an interface for vision-capable LLM providers
type Client interface {
	// Analyze extracts text and detected issues from a base64-encoded image.
	// The call is a single blocking round-trip; any timeout policy belongs
	// to the caller's context or the underlying HTTP client.
	Analyze(ctx context.Context, model string, imageData string) (*Analysis, error)

	// HealthCheck verifies that the provider is accessible and the model is available
	HealthCheck(ctx context.Context, model string) error

	// Name returns the name of the provider (e.g. "ollama", "openai", "anthropic", "google")
	Name() string

	// SupportedModels returns a list of supported model names for this provider
	SupportedModels() []string
}

// Provider represents the type of LLM provider
type Provider string

const (
	// ProviderOllama represents a local Ollama instance
	ProviderOllama Provider = "ollama"

	// ProviderOpenAI represents OpenAI's vision-capable chat API
	ProviderOpenAI Provider = "openai"

	// ProviderAnthropic represents Anthropic's Claude API with vision
	ProviderAnthropic Provider = "anthropic"

	// ProviderGoogle represents Google's Gemini API
	ProviderGoogle Provider = "google"
)

// ClientConfig holds common configuration for all vision clients
type ClientConfig struct {
	// Provider is the LLM provider type
	Provider Provider

	// Model is the specific model to use
	Model string

	// Endpoint is the API endpoint (required for Ollama, unused for cloud providers)
	Endpoint string

	// APIKey is the API key for cloud providers
	APIKey string

	// MaxRetries is the maximum number of retry attempts
	MaxRetries int

	// Temperature controls randomness (0.0 = deterministic, recommended for OCR)
	Temperature float64

	// Prompt overrides the default analysis instruction when non-empty
	Prompt string
}

// EncodeImageBytes encodes raw image bytes for transmission to a provider
func EncodeImageBytes(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// MediaType sniffs the media type of raw image bytes. Anything outside the
// image types the providers accept falls back to image/png.
func MediaType(data []byte) string {
	switch t := http.DetectContentType(data); t {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return t
	default:
		return "image/png"
	}
}

// MediaTypeFromBase64 sniffs the media type of a base64-encoded image
// without decoding the whole payload
func MediaTypeFromBase64(imageData string) string {
	// http.DetectContentType reads at most 512 bytes, 684 base64 characters
	prefix := imageData
	if len(prefix) > 684 {
		prefix = prefix[:684]
	}
	decoded, err := base64.StdEncoding.DecodeString(prefix)
	if err != nil || len(decoded) == 0 {
		return "image/png"
	}
	return MediaType(decoded)
}

// mediaSubtype strips the image/ prefix for APIs that want a bare format name
func mediaSubtype(mediaType string) string {
	return strings.TrimPrefix(mediaType, "image/")
}
