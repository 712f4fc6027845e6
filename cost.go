package genaistudio

import "github.com/openai/openai-go"

type TokenRates struct {
	Input  float64
	Output float64
}

// Pricing constants for GPT-4o, GPT-4o-mini and O3-mini (in dollars per million tokens)
const (
	GPT4oInputRate      = 2.5
	GPT4oOutputRate     = 10.0
	GPT4oMiniInputRate  = 0.15
	GPT4oMiniOutputRate = 0.60
	O3MiniInputRate     = 1.10
	O3MiniOutputRate    = 4.40
)

// ModelPricings is a map of model names to their pricing information
var ModelPricings = map[string]TokenRates{
	"gpt-4o": {
		Input:  GPT4oInputRate,
		Output: GPT4oOutputRate,
	},
	"gpt-4o-mini": {
		Input:  GPT4oMiniInputRate,
		Output: GPT4oMiniOutputRate,
	},
	"o3-mini": {
		Input:  O3MiniInputRate,
		Output: O3MiniOutputRate,
	},
}

// TokenUsage is the cumulative prompt and completion token count over the
// successful calls of one conversation.
type TokenUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
}

func (u *TokenUsage) add(usage openai.CompletionUsage) {
	u.PromptTokens += usage.PromptTokens
	u.CompletionTokens += usage.CompletionTokens
}

// CostDetails represents detailed cost information for a session
type CostDetails struct {
	InputTokens  int64
	OutputTokens int64
	TotalCost    float64
}

// Cost returns the accumulated cost of the session. The second return
// value is false when the session's model has no pricing entry.
func (s *Session) Cost() (*CostDetails, bool) {
	pricing, exists := ModelPricings[s.agent.Model()]
	if !exists {
		return nil, false
	}

	s.mu.Lock()
	usage := s.agent.Usage()
	s.mu.Unlock()
	inputCost := float64(usage.PromptTokens) * pricing.Input / 1000000
	outputCost := float64(usage.CompletionTokens) * pricing.Output / 1000000

	return &CostDetails{
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
		TotalCost:    inputCost + outputCost,
	}, true
}
