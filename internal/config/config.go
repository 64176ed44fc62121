// Package config provides configuration management for the scanproof application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the scanproof application.
// Configuration precedence: CLI flags > Environment variables > Config file > Defaults
type Config struct {
	// OutputDir is the directory where generated reports are saved.
	// Empty means the report lands next to the source image.
	OutputDir string

	// WordlistPath is the dictionary wordlist for spell checking.
	// Empty disables the dictionary pass.
	WordlistPath string

	// HistoryFile is the path to the review history persistence file
	HistoryFile string

	// PromptFile is an optional YAML file overriding the analysis prompt
	PromptFile string

	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string

	// LogFormat is "console" or "json"
	LogFormat string

	// LLM configuration for vision analysis
	LLM LLMConfig
}

// LLMConfig holds configuration for vision LLM providers
type LLMConfig struct {
	// Provider is the LLM provider to use (ollama, openai, anthropic, google)
	Provider string

	// Model is the specific model to use for analysis
	Model string

	// Endpoint is the API endpoint (primarily for Ollama)
	Endpoint string

	// APIKey is the API key for cloud providers, populated from environment
	// variables:
	//   - OPENAI_API_KEY for OpenAI
	//   - ANTHROPIC_API_KEY for Anthropic
	//   - GOOGLE_API_KEY or GOOGLE_APPLICATION_CREDENTIALS for Google
	APIKey string

	// MaxRetries is the maximum number of retry attempts for API calls
	MaxRetries int

	// Temperature controls randomness (0.0 = deterministic, recommended for OCR)
	Temperature float64
}

// Load reads configuration from multiple sources and returns a Config instance.
// Sources are checked in this order: CLI flags > env vars > config file > defaults
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
			v.SetConfigName(".scanproof")
			v.SetConfigType("yaml")
		}
	}

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SCANPROOF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	config := &Config{
		OutputDir:    v.GetString("output-dir"),
		WordlistPath: v.GetString("wordlist"),
		HistoryFile:  v.GetString("history-file"),
		PromptFile:   v.GetString("prompt-file"),
		LogLevel:     v.GetString("log-level"),
		LogFormat:    v.GetString("log-format"),
		LLM: LLMConfig{
			Provider:    v.GetString("llm-provider"),
			Model:       v.GetString("llm-model"),
			Endpoint:    v.GetString("llm-endpoint"),
			MaxRetries:  v.GetInt("llm-max-retries"),
			Temperature: v.GetFloat64("llm-temperature"),
		},
	}

	config.LLM.APIKey = APIKeyForProvider(config.LLM.Provider)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	v.SetDefault("output-dir", "")
	v.SetDefault("wordlist", "")
	v.SetDefault("history-file", filepath.Join(home, ".scanproof-history.json"))
	v.SetDefault("prompt-file", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")

	// Ollama by default so the tool works without cloud credentials
	v.SetDefault("llm-provider", "ollama")
	v.SetDefault("llm-model", "llava")
	v.SetDefault("llm-endpoint", "http://localhost:11434")
	v.SetDefault("llm-max-retries", 3)
	v.SetDefault("llm-temperature", 0.0)
}

// Validate checks that the configuration is valid and internally consistent
func (c *Config) Validate() error {
	if c.OutputDir != "" {
		expanded, err := expandHome(c.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to expand home directory in output-dir: %w", err)
		}
		c.OutputDir = expanded

		if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", c.OutputDir, err)
		}
	}

	if c.HistoryFile == "" {
		return fmt.Errorf("history-file cannot be empty")
	}
	expanded, err := expandHome(c.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to expand home directory in history-file: %w", err)
	}
	c.HistoryFile = expanded

	// The wordlist is only expanded here; a missing or unreadable file
	// degrades to AI-only mode at wiring time instead of failing validation
	if c.WordlistPath != "" {
		expanded, err := expandHome(c.WordlistPath)
		if err != nil {
			return fmt.Errorf("failed to expand home directory in wordlist: %w", err)
		}
		c.WordlistPath = expanded
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log-level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log-format %q, must be console or json", c.LogFormat)
	}

	if err := c.validateLLMConfig(); err != nil {
		return fmt.Errorf("invalid LLM configuration: %w", err)
	}

	return nil
}

// validateLLMConfig validates the LLM provider configuration
func (c *Config) validateLLMConfig() error {
	validProviders := map[string]bool{
		"ollama":    true,
		"openai":    true,
		"anthropic": true,
		"google":    true,
	}
	if !validProviders[strings.ToLower(c.LLM.Provider)] {
		return fmt.Errorf("invalid llm-provider %q, must be one of: ollama, openai, anthropic, google", c.LLM.Provider)
	}
	c.LLM.Provider = strings.ToLower(c.LLM.Provider)

	if c.LLM.Model == "" {
		return fmt.Errorf("llm-model cannot be empty")
	}

	if c.LLM.Provider == "ollama" && c.LLM.Endpoint == "" {
		return fmt.Errorf("llm-endpoint cannot be empty for Ollama provider")
	}

	if c.LLM.Provider != "ollama" && c.LLM.APIKey == "" {
		return fmt.Errorf("API key not found for provider %s, check environment variables", c.LLM.Provider)
	}

	if c.LLM.Temperature < 0.0 || c.LLM.Temperature > 2.0 {
		return fmt.Errorf("llm-temperature must be between 0.0 and 2.0, got %f", c.LLM.Temperature)
	}

	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm-max-retries must be non-negative, got %d", c.LLM.MaxRetries)
	}

	return nil
}

// APIKeyForProvider loads the appropriate API key from environment variables.
// Exported so callers that change the provider after Load can re-resolve the key.
func APIKeyForProvider(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "google":
		if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	default:
		// Ollama doesn't need an API key
		return ""
	}
}

// expandHome expands a leading ~/ to the user's home directory
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}
