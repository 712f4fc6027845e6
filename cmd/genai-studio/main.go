package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	genaistudio "github.com/vismaychuriwala/GenAI-Studio"
	"github.com/vismaychuriwala/GenAI-Studio/webui"
)

func main() {
	// Define command line flags
	serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)

	configPath := serveCmd.String("config", genaistudio.DefaultConfigPath, "Path to the YAML configuration file")
	host := serveCmd.String("host", "", "Listen host (overrides the config)")
	port := serveCmd.Int("port", 0, "Listen port (overrides the config)")

	// Check if any command is provided
	if len(os.Args) < 2 {
		fmt.Println("Expected 'serve' subcommand")
		os.Exit(1)
	}

	// Parse the command
	switch os.Args[1] {
	case "serve":
		serveCmd.Parse(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		fmt.Println("Expected 'serve' subcommand")
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, falling back to environment variables")
	}

	cfg, err := genaistudio.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is not set. Please set it in your .env file")
	}
	baseURL := os.Getenv("OPENAI_BASE_URL")

	// One provider client is shared by every session's agent.
	llm := genaistudio.NewLLM(apiKey, baseURL)
	agentConfig := cfg.AgentConfig(apiKey, baseURL)

	server := &webui.Server{
		App:      cfg.App,
		Model:    cfg.Agent.Model,
		Sessions: genaistudio.NewMemoryStore(),
		NewAgent: func() *genaistudio.Agent {
			return genaistudio.NewAgentWithClient(llm, agentConfig)
		},
		Logger: slog.Default(),
	}

	slog.Info("Starting chat server", "addr", cfg.Addr(), "model", cfg.Agent.Model)
	if err := http.ListenAndServe(cfg.Addr(), server.Handler()); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
