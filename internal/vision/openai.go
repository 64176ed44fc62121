package vision

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/platinummonkey/scanproof/internal/logger"
)

// OpenAIClient implements Client for OpenAI's vision-capable chat API
type OpenAIClient struct {
	client      openai.Client
	logger      *logger.Logger
	temperature float64
	maxRetries  int
	prompt      string
}

// NewOpenAIClient creates a new OpenAI vision client
func NewOpenAIClient(apiKey string, temperature float64, maxRetries int, prompt string, log *logger.Logger) *OpenAIClient {
	if log == nil {
		log = logger.Get()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if maxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(maxRetries))
	}

	client := openai.NewClient(opts...)

	return &OpenAIClient{
		client:      client,
		logger:      log,
		temperature: temperature,
		maxRetries:  maxRetries,
		prompt:      prompt,
	}
}

// Analyze extracts text and issues using OpenAI's vision API
func (o *OpenAIClient) Analyze(ctx context.Context, model string, imageData string) (*Analysis, error) {
	o.logger.WithFields("model", model, "provider", "openai").Debug("Analyzing image with OpenAI")

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(promptOrDefault(o.prompt)),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: fmt.Sprintf("data:%s;base64,%s", MediaTypeFromBase64(imageData), imageData),
				}),
			}),
		},
		Temperature: openai.Float(o.temperature),
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	analysis := ParseAnalysis(resp.Choices[0].Message.Content, o.logger)
	o.logger.WithFields("issues", len(analysis.Issues), "text_length", len(analysis.ExtractedText)).Debug("OpenAI analysis completed")
	return analysis, nil
}

// HealthCheck verifies that the OpenAI API is accessible
func (o *OpenAIClient) HealthCheck(ctx context.Context, model string) error {
	_, err := o.client.Models.Get(ctx, model)
	if err != nil {
		return fmt.Errorf("openai health check failed: %w", err)
	}
	return nil
}

// Name returns the provider name
func (o *OpenAIClient) Name() string {
	return "openai"
}

// SupportedModels returns a list of OpenAI vision models
func (o *OpenAIClient) SupportedModels() []string {
	return []string{
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4-turbo",
		"gpt-4-vision-preview",
	}
}
