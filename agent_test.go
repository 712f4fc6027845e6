package genaistudio

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vismaychuriwala/GenAI-Studio/prompts"
)

// stubClient implements CompletionClient with scripted replies and records
// every request it receives.
type stubClient struct {
	replies []string
	err     error
	params  []openai.ChatCompletionNewParams
}

func (c *stubClient) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	c.params = append(c.params, params)
	if c.err != nil {
		return nil, c.err
	}
	reply := "OK"
	if len(c.replies) > 0 {
		reply = c.replies[0]
		c.replies = c.replies[1:]
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: reply}},
		},
		Usage: openai.CompletionUsage{PromptTokens: 12, CompletionTokens: 5},
	}, nil
}

func marshalParams(t *testing.T, params openai.ChatCompletionNewParams) map[string]any {
	t.Helper()
	b, err := json.Marshal(params)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestChat_ReturnsReplyAndRecordsTurns(t *testing.T) {
	client := &stubClient{replies: []string{"Hi there"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini"})

	reply, err := agent.Chat(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)
	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "Hello"},
		{Role: RoleAssistant, Content: "Hi there"},
	}, agent.History())
}

func TestChat_HistoryAlternates(t *testing.T) {
	client := &stubClient{replies: []string{"one", "two", "three"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini"})

	for _, msg := range []string{"a", "b", "c"} {
		_, err := agent.Chat(context.Background(), msg)
		require.NoError(t, err)
	}

	turns := agent.History()
	require.Len(t, turns, 6)
	for i, turn := range turns {
		want := RoleUser
		if i%2 == 1 {
			want = RoleAssistant
		}
		assert.Equal(t, want, turn.Role, "turn %d", i)
	}
}

func TestClearHistory_EmptiesHistory(t *testing.T) {
	client := &stubClient{replies: []string{"Hi there"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini"})

	_, err := agent.Chat(context.Background(), "Hello")
	require.NoError(t, err)
	require.Len(t, agent.History(), 2)

	agent.ClearHistory()
	assert.Empty(t, agent.History())

	// Clearing an already empty history stays empty.
	agent.ClearHistory()
	assert.Empty(t, agent.History())
}

func TestClearHistory_NoLeakageIntoNextChat(t *testing.T) {
	client := &stubClient{replies: []string{"Hi there", "OK"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini"})

	_, err := agent.Chat(context.Background(), "Hello")
	require.NoError(t, err)
	agent.ClearHistory()

	reply, err := agent.Chat(context.Background(), "Again")
	require.NoError(t, err)
	assert.Equal(t, "OK", reply)
	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "Again"},
		{Role: RoleAssistant, Content: "OK"},
	}, agent.History())

	// The request after the clear carries only the system message and the
	// new user turn.
	lastParams := client.params[len(client.params)-1]
	require.Len(t, lastParams.Messages, 2)
}

func TestChat_TransportErrorLeavesUserTurn(t *testing.T) {
	errTransport := errors.New("connection reset")
	client := &stubClient{err: errTransport}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini"})

	_, err := agent.Chat(context.Background(), "fails")
	require.ErrorIs(t, err, errTransport)

	// The appended user turn is not rolled back on failure.
	assert.Equal(t, []Turn{{Role: RoleUser, Content: "fails"}}, agent.History())
}

func TestChat_NoChoicesIsAnError(t *testing.T) {
	agent := NewAgentWithClient(&emptyCompletionClient{}, AgentConfig{Model: "gpt-4o-mini"})

	_, err := agent.Chat(context.Background(), "Hello")
	require.ErrorIs(t, err, ErrNoCompletion)
	assert.Equal(t, []Turn{{Role: RoleUser, Content: "Hello"}}, agent.History())
}

type emptyCompletionClient struct{}

func (c *emptyCompletionClient) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return &openai.ChatCompletion{}, nil
}

func TestAgent_DefaultSystemPrompt(t *testing.T) {
	agent := NewAgentWithClient(&stubClient{}, AgentConfig{Model: "gpt-4o-mini"})
	assert.Equal(t, prompts.Default, agent.SystemPrompt())

	agent = NewAgentWithClient(&stubClient{}, AgentConfig{
		Model:            "gpt-4o-mini",
		SystemPromptPath: filepath.Join(t.TempDir(), "does-not-exist.txt"),
	})
	assert.Equal(t, prompts.Default, agent.SystemPrompt())
}

func TestAgent_SystemPromptFileTrimmed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Be terse.\n"), 0o644))

	agent := NewAgentWithClient(&stubClient{}, AgentConfig{
		Model:            "gpt-4o-mini",
		SystemPromptPath: path,
	})
	assert.Equal(t, "Be terse.", agent.SystemPrompt())
}

func TestCompletionParams_OmitsUnsetReasoningEffort(t *testing.T) {
	client := &stubClient{replies: []string{"Hi there"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini"})

	_, err := agent.Chat(context.Background(), "Hello")
	require.NoError(t, err)
	require.Len(t, client.params, 1)

	m := marshalParams(t, client.params[0])
	_, present := m["reasoning_effort"]
	assert.False(t, present, "reasoning_effort must be absent, not null or empty")
}

func TestCompletionParams_CarriesReasoningEffortWhenSet(t *testing.T) {
	client := &stubClient{replies: []string{"Hi there"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "o3-mini", ReasoningEffort: "low"})

	_, err := agent.Chat(context.Background(), "Hello")
	require.NoError(t, err)

	m := marshalParams(t, client.params[0])
	assert.Equal(t, "low", m["reasoning_effort"])
}

func TestCompletionParams_SystemMessageLeadsEveryRequest(t *testing.T) {
	client := &stubClient{replies: []string{"one", "two"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini"})

	_, err := agent.Chat(context.Background(), "first")
	require.NoError(t, err)
	_, err = agent.Chat(context.Background(), "second")
	require.NoError(t, err)

	m := marshalParams(t, client.params[1])
	messages, ok := m["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 4)

	first, ok := messages[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, prompts.Default, first["content"])
}

func TestCompletionParams_TemperatureDefaultsTo07(t *testing.T) {
	client := &stubClient{replies: []string{"Hi there"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini"})

	_, err := agent.Chat(context.Background(), "Hello")
	require.NoError(t, err)

	m := marshalParams(t, client.params[0])
	require.Contains(t, m, "temperature")
	assert.InDelta(t, DefaultTemperature, m["temperature"].(float64), 1e-9)
}

func TestCompletionParams_TemperatureConfigurable(t *testing.T) {
	client := &stubClient{replies: []string{"Hi there"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini", Temperature: 0.2})

	_, err := agent.Chat(context.Background(), "Hello")
	require.NoError(t, err)

	m := marshalParams(t, client.params[0])
	assert.InDelta(t, 0.2, m["temperature"].(float64), 1e-9)
}

func TestAgent_UsageAccumulates(t *testing.T) {
	client := &stubClient{replies: []string{"one", "two"}}
	agent := NewAgentWithClient(client, AgentConfig{Model: "gpt-4o-mini"})

	_, err := agent.Chat(context.Background(), "a")
	require.NoError(t, err)
	_, err = agent.Chat(context.Background(), "b")
	require.NoError(t, err)

	usage := agent.Usage()
	assert.Equal(t, int64(24), usage.PromptTokens)
	assert.Equal(t, int64(10), usage.CompletionTokens)
}
