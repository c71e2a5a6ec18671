package openai

import (
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel   = goopenai.GPT4oMini
	DefaultTimeout = 2 * time.Minute
)

// OpenAIConfig holds the configuration for the OpenAI client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GenerateRequest is a single-turn completion request.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	// JSONMode asks the model for a single JSON object.
	JSONMode bool
}

type openaiImpl struct {
	client  *goopenai.Client
	model   string
	timeout time.Duration
}
