package main

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/mentor-boot/appconfig"
	"github.com/SaiNageswarS/mentor-boot/llm"
	"github.com/ollama/ollama/api"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func loadConfig(path string) (*appconfig.AppConfig, error) {
	dotenv.LoadEnv()

	cfg := &appconfig.AppConfig{}
	if err := config.LoadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func connectMongo(ctx context.Context, cfg *appconfig.AppConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoUri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func newCompleter(cfg *appconfig.AppConfig) (llm.Completer, error) {
	switch cfg.CompletionProvider {
	case appconfig.ProviderOpenAI:
		if cfg.CompletionAPIKey == "" {
			return nil, fmt.Errorf("COMPLETION-API-KEY is required for provider %s", cfg.CompletionProvider)
		}
		return llm.NewOpenAIClient(cfg.CompletionURL, cfg.CompletionAPIKey, cfg.CompletionModel, nil), nil
	case appconfig.ProviderOllama:
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama client: %w", err)
		}
		return llm.NewOllamaClient(client, cfg.CompletionModel), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.CompletionProvider)
	}
}
