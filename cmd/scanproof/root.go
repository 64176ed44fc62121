package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/scanproof/internal/composer"
	"github.com/platinummonkey/scanproof/internal/config"
	"github.com/platinummonkey/scanproof/internal/logger"
	"github.com/platinummonkey/scanproof/internal/report"
	"github.com/platinummonkey/scanproof/internal/review"
	"github.com/platinummonkey/scanproof/internal/spellcheck"
	"github.com/platinummonkey/scanproof/internal/vision"
)

var (
	cfgFile string
	version = "dev" // Set via build flags
)

// Flag overrides, applied on top of the loaded configuration
var (
	flagOutputDir  string
	flagWordlist   string
	flagLogLevel   string
	flagProvider   string
	flagModel      string
	flagEndpoint   string
	flagPromptFile string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scanproof",
	Short: "Proofread scanned documents with a vision LLM and a dictionary",
	Long: `scanproof extracts text from a scanned document image using a
vision-capable LLM, cross-checks it against a dictionary, and walks you
through the detected issues one at a time. Accepted corrections end up as
interactive comment annotations in a generated PDF report.

Features:
  - Text extraction via Ollama, OpenAI, Anthropic or Google vision models
  - Dictionary spell check with suggestions
  - Sequential accept/reject review of every detected issue
  - Annotated PDF report with openable comment markers
  - Review history across runs`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scanproof.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output", "", "output directory for reports (default: next to the image)")
	rootCmd.PersistentFlags().StringVar(&flagWordlist, "wordlist", "", "dictionary wordlist file (empty disables the dictionary pass)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "LLM provider (ollama, openai, anthropic, google)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "vision model name")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "API endpoint (Ollama)")
	rootCmd.PersistentFlags().StringVar(&flagPromptFile, "prompt-file", "", "YAML file overriding the analysis prompt")
}

// loadConfig reads configuration and applies any CLI flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = flagOutputDir
	}
	if flags.Changed("wordlist") {
		cfg.WordlistPath = flagWordlist
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("provider") {
		cfg.LLM.Provider = flagProvider
		// The key loaded by config.Load belongs to the pre-override provider
		cfg.LLM.APIKey = config.APIKeyForProvider(flagProvider)
	}
	if flags.Changed("model") {
		cfg.LLM.Model = flagModel
	}
	if flags.Changed("endpoint") {
		cfg.LLM.Endpoint = flagEndpoint
	}
	if flags.Changed("prompt-file") {
		cfg.PromptFile = flagPromptFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from configuration
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// buildComposer wires the full pipeline from configuration
func buildComposer(ctx context.Context, cfg *config.Config, log *logger.Logger) (*composer.Composer, error) {
	prompt := ""
	if cfg.PromptFile != "" {
		promptCfg, err := vision.LoadPromptConfig(cfg.PromptFile)
		if err != nil {
			return nil, err
		}
		prompt = promptCfg.Text()
	}

	visionCfg := &vision.ClientConfig{
		Provider:    vision.Provider(cfg.LLM.Provider),
		Model:       cfg.LLM.Model,
		Endpoint:    cfg.LLM.Endpoint,
		APIKey:      cfg.LLM.APIKey,
		MaxRetries:  cfg.LLM.MaxRetries,
		Temperature: cfg.LLM.Temperature,
		Prompt:      prompt,
	}
	if err := vision.ValidateConfig(visionCfg); err != nil {
		return nil, err
	}

	client, err := vision.NewClient(ctx, visionCfg, log)
	if err != nil {
		return nil, err
	}

	// A broken wordlist degrades to AI-only mode rather than failing the run
	var validator *spellcheck.Validator
	if cfg.WordlistPath != "" {
		dict, err := spellcheck.LoadWordlist(cfg.WordlistPath)
		if err != nil {
			log.WithError(err).Warn("Failed to load wordlist, dictionary pass disabled")
		} else {
			validator = spellcheck.New(&spellcheck.Config{Dictionary: dict, Logger: log})
		}
	} else {
		log.Warn("No wordlist configured, dictionary pass disabled")
	}

	store, err := review.LoadOrCreate(cfg.HistoryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load review history: %w", err)
	}

	return composer.New(&composer.Config{
		Vision:    client,
		Model:     cfg.LLM.Model,
		Validator: validator,
		Generator: report.New(&report.Config{Logger: log}),
		Store:     store,
		OutputDir: cfg.OutputDir,
		Logger:    log,
	})
}
