package llm

import (
	"github.com/pkg/errors"

	"github.com/inquora/inquora/internal/profile"
)

// Config represents language-model gateway configuration.
type Config struct {
	Provider    string  // openai, deepseek, ollama
	Model       string  // gpt-4o-mini, deepseek-chat, ...
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 2048
	Temperature float32 // default: 0.7
	// MaxInflight caps concurrent upstream calls. default: 4
	MaxInflight int
}

// NewConfigFromProfile creates gateway config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{
		Provider:    p.LLMProvider,
		Model:       p.LLMModel,
		APIKey:      p.LLMAPIKey,
		BaseURL:     p.LLMBaseURL,
		MaxTokens:   p.LLMMaxTokens,
		Temperature: p.LLMTemperature,
		MaxInflight: p.LLMMaxInflight,
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxInflight <= 0 {
		cfg.MaxInflight = 4
	}
	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return errors.New("LLM provider is required")
	}
	if c.Provider != "ollama" && c.APIKey == "" {
		return errors.New("LLM API key is required")
	}
	return nil
}
