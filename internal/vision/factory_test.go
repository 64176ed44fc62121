package vision

import (
	"context"
	"strings"
	"testing"
)

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient(context.Background(), &ClientConfig{
		Provider: ProviderOllama,
		Model:    "llava",
		Endpoint: "http://localhost:11434",
	}, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.Name() != "ollama" {
		t.Errorf("Name() = %q, want ollama", client.Name())
	}
}

func TestNewClient_CloudProvidersRequireAPIKey(t *testing.T) {
	for _, provider := range []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle} {
		t.Run(string(provider), func(t *testing.T) {
			_, err := NewClient(context.Background(), &ClientConfig{
				Provider: provider,
				Model:    "some-model",
			}, nil)
			if err == nil {
				t.Errorf("NewClient() should fail without API key for %s", provider)
			}
		})
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &ClientConfig{
		Provider: Provider("carrier-pigeon"),
		Model:    "homing-v1",
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported provider") {
		t.Errorf("NewClient() error = %v, want unsupported provider", err)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *ClientConfig
		wantErr bool
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
		{
			name: "valid ollama",
			cfg: &ClientConfig{
				Provider: ProviderOllama,
				Model:    "llava",
				Endpoint: "http://localhost:11434",
			},
			wantErr: false,
		},
		{
			name: "ollama missing endpoint",
			cfg: &ClientConfig{
				Provider: ProviderOllama,
				Model:    "llava",
			},
			wantErr: true,
		},
		{
			name: "valid anthropic",
			cfg: &ClientConfig{
				Provider: ProviderAnthropic,
				Model:    "claude-3-5-sonnet-20241022",
				APIKey:   "sk-test",
			},
			wantErr: false,
		},
		{
			name: "cloud provider missing key",
			cfg: &ClientConfig{
				Provider: ProviderOpenAI,
				Model:    "gpt-4o",
			},
			wantErr: true,
		},
		{
			name: "missing model",
			cfg: &ClientConfig{
				Provider: ProviderOllama,
				Endpoint: "http://localhost:11434",
			},
			wantErr: true,
		},
		{
			name: "temperature out of range",
			cfg: &ClientConfig{
				Provider: ProviderOllama,
				Model:    "llava",
				Endpoint: "http://localhost:11434",
				Temperature: 3.0,
			},
			wantErr: true,
		},
		{
			name: "negative retries",
			cfg: &ClientConfig{
				Provider:   ProviderOllama,
				Model:      "llava",
				Endpoint:   "http://localhost:11434",
				MaxRetries: -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultModelForProvider(t *testing.T) {
	if got := DefaultModelForProvider(ProviderOllama); got != "llava" {
		t.Errorf("DefaultModelForProvider(ollama) = %q", got)
	}
	if got := DefaultModelForProvider(Provider("unknown")); got != "" {
		t.Errorf("DefaultModelForProvider(unknown) = %q, want empty", got)
	}
}
