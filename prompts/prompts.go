package prompts

import (
	"os"
	"strings"
)

// Default is the system prompt used when no prompt file is configured.
const Default = "You are a helpful AI assistant. Answer questions clearly and concisely."

// LoadSystemPrompt returns the contents of the prompt file at path with
// leading and trailing whitespace trimmed. An empty path or an unreadable
// file falls back to Default.
func LoadSystemPrompt(path string) string {
	if path == "" {
		return Default
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default
	}
	return strings.TrimSpace(string(data))
}
