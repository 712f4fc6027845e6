package genaistudio

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompletionClient defines the minimal contract required by the agent to
// interact with a language-model provider. Implementations may add
// additional helper methods but only the operation below is relied upon
// by the rest of the codebase.
type CompletionClient interface {
	// New issues a non-streaming chat completion request.
	New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// LLM talks to an OpenAI-compatible chat completions endpoint.
type LLM struct {
	APIKey  string
	BaseURL string
	client  openai.Client
}

var _ CompletionClient = &LLM{}

// NewLLM builds a provider client for the given credential. An empty
// baseURL targets the default endpoint; set it to use a compatible gateway.
func NewLLM(apiKey string, baseURL string) *LLM {
	var client openai.Client
	if baseURL != "" {
		client = openai.NewClient(option.WithBaseURL(baseURL), option.WithAPIKey(apiKey))
	} else {
		client = openai.NewClient(option.WithAPIKey(apiKey))
	}
	return &LLM{
		APIKey:  apiKey,
		BaseURL: baseURL,
		client:  client,
	}
}

func (c *LLM) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
