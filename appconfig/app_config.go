package appconfig

import (
	"strings"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/mentor-boot/llm"
	"github.com/SaiNageswarS/mentor-boot/memory"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	MongoDatabase string `env:"MONGO-DATABASE" ini:"mongo_database"`
	HTTPPort      string `env:"HTTP-PORT" ini:"http_port"`

	CompletionProvider string `env:"COMPLETION-PROVIDER" ini:"completion_provider"`
	CompletionURL      string `env:"COMPLETION-URL" ini:"completion_url"`
	CompletionModel    string `env:"COMPLETION-MODEL" ini:"completion_model"`
	// credential is read from the environment only
	CompletionAPIKey string `env:"COMPLETION-API-KEY" ini:"-"`

	Temperature     float64 `ini:"completion_temperature"`
	MaxTokens       int     `ini:"completion_max_tokens"`
	HistoryTurns    int     `ini:"history_turns"`
	MemoryQueueSize int     `ini:"memory_queue_size"`
}

// ApplyDefaults fills unset values.
func (c *AppConfig) ApplyDefaults() {
	if c.MongoDatabase == "" {
		c.MongoDatabase = "mentor"
	}
	if c.HTTPPort == "" {
		c.HTTPPort = ":8080"
	}
	c.CompletionProvider = strings.ToLower(strings.TrimSpace(c.CompletionProvider))
	if c.CompletionProvider == "" {
		c.CompletionProvider = ProviderOpenAI
	}
	if c.CompletionURL == "" && c.CompletionProvider == ProviderOpenAI {
		c.CompletionURL = llm.DefaultOpenAIURL
	}
	if c.CompletionModel == "" {
		if c.CompletionProvider == ProviderOllama {
			c.CompletionModel = "llama3.1"
		} else {
			c.CompletionModel = "gpt-4o-mini"
		}
	}
	if c.Temperature <= 0 {
		c.Temperature = llm.DefaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = llm.DefaultMaxTokens
	}
	if c.HistoryTurns <= 0 {
		c.HistoryTurns = llm.DefaultHistoryTurns
	}
	if c.MemoryQueueSize <= 0 {
		c.MemoryQueueSize = memory.DefaultQueueSize
	}
}
