package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
)

// IOpenAI defines the interface for chat completions.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	// Generate returns the assistant reply for a system + user prompt pair.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// NewOpenAI creates a new OpenAI client. Model defaults to DefaultModel if empty.
func NewOpenAI(cfg OpenAIConfig) (IOpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &openaiImpl{
		client:  goopenai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}
