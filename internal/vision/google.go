package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/platinummonkey/scanproof/internal/logger"
	"google.golang.org/api/option"
)

// GoogleClient implements Client for Google's Gemini API
type GoogleClient struct {
	client      *genai.Client
	logger      *logger.Logger
	temperature float64
	maxRetries  int
	prompt      string
}

// NewGoogleClient creates a new Google Gemini vision client
func NewGoogleClient(ctx context.Context, apiKey string, temperature float64, maxRetries int, prompt string, log *logger.Logger) (*GoogleClient, error) {
	if log == nil {
		log = logger.Get()
	}

	opts := []option.ClientOption{
		option.WithAPIKey(apiKey),
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GoogleClient{
		client:      client,
		logger:      log,
		temperature: temperature,
		maxRetries:  maxRetries,
		prompt:      prompt,
	}, nil
}

// Analyze extracts text and issues using Google's Gemini vision API
func (g *GoogleClient) Analyze(ctx context.Context, model string, imageData string) (*Analysis, error) {
	g.logger.WithFields("model", model, "provider", "google").Debug("Analyzing image with Google Gemini")

	imgBytes, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}

	genModel := g.client.GenerativeModel(model)
	genModel.SetTemperature(float32(g.temperature))
	genModel.ResponseMIMEType = "application/json"

	resp, err := genModel.GenerateContent(
		ctx,
		genai.Text(promptOrDefault(g.prompt)),
		genai.ImageData(mediaSubtype(MediaType(imgBytes)), imgBytes),
	)

	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	var content string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			content = string(txt)
			break
		}
	}

	if content == "" {
		return nil, fmt.Errorf("no text content in Gemini response")
	}

	analysis := ParseAnalysis(content, g.logger)
	g.logger.WithFields("issues", len(analysis.Issues), "text_length", len(analysis.ExtractedText)).Debug("Gemini analysis completed")
	return analysis, nil
}

// HealthCheck verifies that the Gemini API is accessible
func (g *GoogleClient) HealthCheck(ctx context.Context, model string) error {
	genModel := g.client.GenerativeModel(model)
	_, err := genModel.GenerateContent(ctx, genai.Text("test"))

	if err != nil {
		return fmt.Errorf("gemini health check failed: %w", err)
	}

	return nil
}

// Name returns the provider name
func (g *GoogleClient) Name() string {
	return "google"
}

// SupportedModels returns a list of Google Gemini vision models
func (g *GoogleClient) SupportedModels() []string {
	return []string{
		"gemini-1.5-pro",
		"gemini-1.5-pro-latest",
		"gemini-1.5-flash",
		"gemini-1.5-flash-latest",
		"gemini-pro-vision",
	}
}

// Close closes the Google client
func (g *GoogleClient) Close() error {
	return g.client.Close()
}
