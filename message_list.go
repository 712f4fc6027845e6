package genaistudio

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
)

// Roles recognized in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a provider-neutral view of one history entry, used for
// rendering and assertions. It is never sent to the model.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessageList holds an ordered collection of messages to preserve the history.
type MessageList struct {
	Messages []openai.ChatCompletionMessageParamUnion
}

func NewMessageList() *MessageList {
	return &MessageList{
		Messages: []openai.ChatCompletionMessageParamUnion{},
	}
}

func (ml *MessageList) Len() int {
	return len(ml.Messages)
}

// Add appends one or more new messages to the MessageList in a FIFO order.
func (ml *MessageList) Add(msgs ...openai.ChatCompletionMessageParamUnion) {
	ml.Messages = append(ml.Messages, msgs...)
}

func (ml *MessageList) All() []openai.ChatCompletionMessageParamUnion {
	return ml.Messages
}

func (ml *MessageList) Clear() {
	ml.Messages = []openai.ChatCompletionMessageParamUnion{}
}

// Turns projects the history into role/content pairs. Entries without a
// plain string content part (multi-part or tool payloads) are skipped.
func (ml *MessageList) Turns() []Turn {
	turns := make([]Turn, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		switch {
		case msg.OfUser != nil:
			if !param.IsOmitted(msg.OfUser.Content.OfString) {
				turns = append(turns, Turn{Role: RoleUser, Content: msg.OfUser.Content.OfString.Value})
			}
		case msg.OfAssistant != nil:
			if !param.IsOmitted(msg.OfAssistant.Content.OfString) {
				turns = append(turns, Turn{Role: RoleAssistant, Content: msg.OfAssistant.Content.OfString.Value})
			}
		}
	}
	return turns
}
