package vision

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPrompt asks the model for the extracted text plus any discrepancies
// it noticed while reading. Issue positions are not requested; word positions
// are recomputed downstream from the extracted text.
const DefaultPrompt = `Extract all text from this scanned document image and proofread it.
Return ONLY valid JSON with no markdown formatting, no code blocks, no explanation.

Format:
{
  "extracted_text": "the full text read from the image",
  "issues": [
    {"type": "spelling", "original": "recieve", "suggested": "receive", "description": "likely misspelling", "source": "model"}
  ]
}

Rules:
- Transcribe the text exactly as written, including any errors
- Report each suspected error as an issue; "type" is "spelling" or "decimal"
- Use type "decimal" for numbers with a comma where a decimal point belongs
- Return {"extracted_text": "...", "issues": []} if nothing looks wrong`

// PromptConfig is an optional YAML file that overrides the analysis prompt,
// letting users tune the instruction per model without rebuilding.
type PromptConfig struct {
	// System is prepended to the prompt when non-empty
	System string `yaml:"system"`

	// Prompt replaces DefaultPrompt when non-empty
	Prompt string `yaml:"prompt"`
}

// LoadPromptConfig reads a prompt override file
func LoadPromptConfig(path string) (*PromptConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt config: %w", err)
	}

	var cfg PromptConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse prompt config: %w", err)
	}

	return &cfg, nil
}

// Text returns the effective prompt
func (c *PromptConfig) Text() string {
	prompt := c.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if c.System != "" {
		return c.System + "\n\n" + prompt
	}
	return prompt
}

// promptOrDefault resolves a client's configured prompt override
func promptOrDefault(prompt string) string {
	if prompt == "" {
		return DefaultPrompt
	}
	return prompt
}
