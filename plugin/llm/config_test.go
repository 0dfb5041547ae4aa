package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inquora/inquora/internal/profile"
)

func TestNewConfigFromProfile(t *testing.T) {
	p := &profile.Profile{
		LLMProvider: "deepseek",
		LLMModel:    "deepseek-chat",
		LLMAPIKey:   "sk-test",
		LLMBaseURL:  "https://api.deepseek.com",
	}

	cfg := NewConfigFromProfile(p)
	assert.Equal(t, "deepseek", cfg.Provider)
	assert.Equal(t, 2048, cfg.MaxTokens)
	assert.Equal(t, float32(0.7), cfg.Temperature)
	assert.Equal(t, 4, cfg.MaxInflight)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{Provider: "", Model: "gpt-4o-mini"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Provider: "openai", Model: "gpt-4o-mini"}
	assert.Error(t, cfg.Validate(), "openai requires an API key")

	cfg = &Config{Provider: "ollama", Model: "llama3", BaseURL: "http://localhost:11434"}
	assert.NoError(t, cfg.Validate())
}

func TestNewServiceUnsupportedProvider(t *testing.T) {
	_, err := NewService(&Config{Provider: "bedrock", Model: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
