package vision

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/platinummonkey/scanproof/internal/logger"
)

// AnthropicClient implements Client for Anthropic's Claude API
type AnthropicClient struct {
	client      anthropic.Client
	logger      *logger.Logger
	temperature float64
	maxRetries  int
	prompt      string
}

// NewAnthropicClient creates a new Anthropic Claude vision client
func NewAnthropicClient(apiKey string, temperature float64, maxRetries int, prompt string, log *logger.Logger) *AnthropicClient {
	if log == nil {
		log = logger.Get()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if maxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(maxRetries))
	}

	client := anthropic.NewClient(opts...)

	return &AnthropicClient{
		client:      client,
		logger:      log,
		temperature: temperature,
		maxRetries:  maxRetries,
		prompt:      prompt,
	}
}

// Analyze extracts text and issues using Anthropic's Claude vision API
func (a *AnthropicClient) Analyze(ctx context.Context, model string, imageData string) (*Analysis, error) {
	a.logger.WithFields("model", model, "provider", "anthropic").Debug("Analyzing image with Anthropic Claude")

	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(promptOrDefault(a.prompt)),
				anthropic.NewImageBlockBase64(MediaTypeFromBase64(imageData), imageData),
			),
		},
		Temperature: anthropic.Float(a.temperature),
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from Anthropic")
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content = block.Text
			break
		}
	}

	if content == "" {
		return nil, fmt.Errorf("no text content in Anthropic response")
	}

	analysis := ParseAnalysis(content, a.logger)
	a.logger.WithFields("issues", len(analysis.Issues), "text_length", len(analysis.ExtractedText)).Debug("Anthropic analysis completed")
	return analysis, nil
}

// HealthCheck verifies that the Anthropic API is accessible
func (a *AnthropicClient) HealthCheck(ctx context.Context, model string) error {
	// Make a minimal API call to verify credentials
	_, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("test")),
		},
	})

	if err != nil {
		return fmt.Errorf("anthropic health check failed: %w", err)
	}

	return nil
}

// Name returns the provider name
func (a *AnthropicClient) Name() string {
	return "anthropic"
}

// SupportedModels returns a list of Anthropic Claude models with vision capabilities
func (a *AnthropicClient) SupportedModels() []string {
	return []string{
		"claude-3-5-sonnet-20241022",
		"claude-3-5-sonnet-20240620",
		"claude-3-opus-20240229",
		"claude-3-sonnet-20240229",
		"claude-3-haiku-20240307",
	}
}
