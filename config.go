package genaistudio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the server looks for its configuration when
// no flag overrides it.
const DefaultConfigPath = "config.yaml"

// PromptsDir is the directory system prompt files are resolved under.
const PromptsDir = "prompts"

const defaultPort = 8080

// Config mirrors config.yaml.
type Config struct {
	App    AppConfig     `yaml:"app"`
	Server ServerConfig  `yaml:"server"`
	Agent  AgentSettings `yaml:"agent"`
}

// AppConfig holds the page chrome shown by the web UI.
type AppConfig struct {
	PageTitle string `yaml:"page_title"`
	Icon      string `yaml:"icon"`
	Title     string `yaml:"title"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AgentSettings configures the conversation agent. Temperature is a
// pointer so an absent key can be told apart from an explicit zero.
type AgentSettings struct {
	Model            string   `yaml:"model"`
	Temperature      *float64 `yaml:"temperature"`
	SystemPromptFile string   `yaml:"system_prompt_file"`
	ReasoningEffort  string   `yaml:"reasoning_effort"`
}

// DefaultConfig returns the values used for keys config.yaml leaves out.
// Agent.Model has no default; LoadConfig rejects a config without one.
func DefaultConfig() Config {
	temperature := DefaultTemperature
	return Config{
		App: AppConfig{
			PageTitle: "GenAI Studio",
			Icon:      "🤖",
			Title:     "GenAI Studio",
		},
		Server: ServerConfig{Port: defaultPort},
		Agent:  AgentSettings{Temperature: &temperature},
	}
}

// LoadConfig reads and validates the YAML configuration at path. Missing
// optional keys keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Agent.Model == "" {
		return Config{}, errors.New("agent.model is required")
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Agent.Temperature == nil {
		temperature := DefaultTemperature
		cfg.Agent.Temperature = &temperature
	}
	return cfg, nil
}

// SystemPromptPath resolves the configured prompt file under PromptsDir.
// Empty when no prompt file is configured.
func (c Config) SystemPromptPath() string {
	if c.Agent.SystemPromptFile == "" {
		return ""
	}
	return filepath.Join(PromptsDir, c.Agent.SystemPromptFile)
}

// Addr is the listen address for the web server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AgentConfig combines the file configuration with the environment
// credential into the agent construction parameters.
func (c Config) AgentConfig(apiKey, baseURL string) AgentConfig {
	var temperature float64
	if c.Agent.Temperature != nil {
		temperature = *c.Agent.Temperature
	}
	return AgentConfig{
		APIKey:           apiKey,
		BaseURL:          baseURL,
		Model:            c.Agent.Model,
		Temperature:      temperature,
		SystemPromptPath: c.SystemPromptPath(),
		ReasoningEffort:  c.Agent.ReasoningEffort,
	}
}
