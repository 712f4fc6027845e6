package genaistudio

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
	"github.com/vismaychuriwala/GenAI-Studio/prompts"
)

// DefaultTemperature is the sampling temperature applied when the
// configured value is zero.
const DefaultTemperature = 0.7

// AgentConfig carries the construction parameters for an Agent.
type AgentConfig struct {
	// APIKey is the provider credential. Callers are expected to fail
	// fast when it is missing; the agent itself does not validate it.
	APIKey string
	// BaseURL optionally points the client at a compatible gateway.
	BaseURL string
	// Model is the completion model identifier. Not validated locally;
	// bad values surface as remote API errors.
	Model string
	// Temperature is the sampling temperature. Zero means DefaultTemperature.
	Temperature float64
	// SystemPromptPath optionally names a file whose trimmed contents
	// replace the default system prompt.
	SystemPromptPath string
	// ReasoningEffort, when set, is passed through on every request.
	// When empty the field is left out of the request entirely.
	ReasoningEffort string
}

// Agent holds one conversation with the model: an immutable system prompt
// plus the alternating user/assistant history. It is not safe for
// concurrent use; callers serialize access, normally through a Session.
type Agent struct {
	client          CompletionClient
	model           string
	temperature     float64
	reasoningEffort string
	systemPrompt    string
	history         *MessageList
	usage           TokenUsage
}

// NewAgent builds an Agent with its own provider client from cfg.
func NewAgent(cfg AgentConfig) *Agent {
	return NewAgentWithClient(NewLLM(cfg.APIKey, cfg.BaseURL), cfg)
}

// NewAgentWithClient builds an Agent on top of an existing completion
// client. Tests use it to stub the remote call.
func NewAgentWithClient(client CompletionClient, cfg AgentConfig) *Agent {
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	return &Agent{
		client:          client,
		model:           cfg.Model,
		temperature:     temperature,
		reasoningEffort: cfg.ReasoningEffort,
		systemPrompt:    prompts.LoadSystemPrompt(cfg.SystemPromptPath),
		history:         NewMessageList(),
	}
}

// Chat appends userMessage to the history, sends the system prompt plus
// the full history to the model, appends the reply as an assistant turn
// and returns it. The call blocks for the full network round trip.
//
// On failure the error propagates unchanged and the appended user turn
// stays in history, leaving the history ending in an unpaired user turn.
func (a *Agent) Chat(ctx context.Context, userMessage string) (string, error) {
	a.history.Add(openai.UserMessage(userMessage))

	completion, err := a.client.New(ctx, a.completionParams())
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", ErrNoCompletion
	}

	reply := completion.Choices[0].Message.Content
	a.history.Add(openai.AssistantMessage(reply))
	a.usage.add(completion.Usage)
	return reply, nil
}

// completionParams assembles the request for the current history. Optional
// fields are only assigned when they carry a value, so an unset reasoning
// effort is absent from the serialized request rather than null or empty.
func (a *Agent) completionParams() openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, a.history.Len()+1)
	messages = append(messages, openai.SystemMessage(a.systemPrompt))
	messages = append(messages, a.history.All()...)

	params := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       shared.ChatModel(a.model),
		Temperature: openai.Float(a.temperature),
	}
	if a.reasoningEffort != "" {
		params.ReasoningEffort = shared.ReasoningEffort(a.reasoningEffort)
	}
	return params
}

// ClearHistory resets the conversation history. The system prompt and the
// accumulated usage are unaffected. Safe to call repeatedly.
func (a *Agent) ClearHistory() {
	a.history.Clear()
}

// History returns the conversation so far as role/content turns.
func (a *Agent) History() []Turn {
	return a.history.Turns()
}

// SystemPrompt returns the text of the immutable system message.
func (a *Agent) SystemPrompt() string {
	return a.systemPrompt
}

// Model returns the configured model identifier.
func (a *Agent) Model() string {
	return a.model
}

// Usage returns the token usage accumulated over successful calls.
func (a *Agent) Usage() TokenUsage {
	return a.usage
}
