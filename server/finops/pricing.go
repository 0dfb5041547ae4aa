package finops

import (
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// ModelRate is the USD price per 1,000 tokens for a model.
type ModelRate struct {
	Input  float64
	Output float64
}

// modelRates is a static rate table. Prices are estimates for budgeting, not
// metered billing; see EstimateCost.
var modelRates = map[string]ModelRate{
	"gpt-4o":            {Input: 0.0025, Output: 0.01},
	"gpt-4o-mini":       {Input: 0.00015, Output: 0.0006},
	"gpt-4.1":           {Input: 0.002, Output: 0.008},
	"gpt-4.1-mini":      {Input: 0.0004, Output: 0.0016},
	"gpt-4":             {Input: 0.03, Output: 0.06},
	"gpt-3.5-turbo":     {Input: 0.0005, Output: 0.0015},
	"deepseek-chat":     {Input: 0.00014, Output: 0.00028},
	"deepseek-reasoner": {Input: 0.00055, Output: 0.00219},
}

// defaultRate is used for models missing from the table.
var defaultRate = ModelRate{Input: 0.001, Output: 0.002}

// RateFor returns the rate for a model, falling back to a conservative default.
func RateFor(model string) ModelRate {
	if rate, ok := modelRates[strings.ToLower(model)]; ok {
		return rate
	}
	return defaultRate
}

// EstimateTokens approximates token usage from character counts.
// The 4-chars-per-token heuristic is the fallback when no tokenizer is
// available for the model.
func EstimateTokens(promptChars, responseChars int) int64 {
	if promptChars < 0 {
		promptChars = 0
	}
	if responseChars < 0 {
		responseChars = 0
	}
	return int64((promptChars + responseChars) / 4)
}

// EstimateCost returns the estimated USD cost for a token count against a
// model's rate table entry, assuming a 50/50 input/output split. This is an
// approximation for budget tracking and is never reconciled against a billing
// API.
func EstimateCost(tokens int64, model string) float64 {
	if tokens <= 0 {
		return 0
	}
	rate := RateFor(model)
	half := float64(tokens) / 2
	return half/1000*rate.Input + half/1000*rate.Output
}

// TokenCounter counts tokens with tiktoken when the model is known to it,
// falling back to the character heuristic otherwise.
type TokenCounter struct {
	mu     sync.RWMutex
	codecs map[string]tokenizer.Codec
}

// NewTokenCounter creates a new token counter.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{
		codecs: make(map[string]tokenizer.Codec),
	}
}

// Count returns the estimated token total for a prompt/response pair.
func (c *TokenCounter) Count(model, prompt, response string) int64 {
	codec, ok := c.getCodec(model)
	if !ok {
		return EstimateTokens(len(prompt), len(response))
	}

	total := 0
	for _, text := range []string{prompt, response} {
		ids, _, err := codec.Encode(text)
		if err != nil {
			return EstimateTokens(len(prompt), len(response))
		}
		total += len(ids)
	}
	return int64(total)
}

func (c *TokenCounter) getCodec(model string) (tokenizer.Codec, bool) {
	model = strings.ToLower(model)

	c.mu.RLock()
	if cached, ok := c.codecs[model]; ok {
		c.mu.RUnlock()
		return cached, true
	}
	c.mu.RUnlock()

	codec, err := tokenizer.ForModel(tokenizer.Model(model))
	if err != nil {
		return nil, false
	}

	c.mu.Lock()
	c.codecs[model] = codec
	c.mu.Unlock()
	return codec, true
}
