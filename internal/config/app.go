package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sagebot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"SAGE_RUNTIME_PATH" envDefault:".sagebot"`

	// Transport flags
	EnableTelegram  bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableMCPServer bool `env:"ENABLE_MCP_SERVER" envDefault:"false"`

	// Pipeline tuning
	MaxConversationHistory int  `env:"MAX_CONVERSATION_HISTORY" envDefault:"10"`
	TopKRetrieval          int  `env:"TOP_K_RETRIEVAL" envDefault:"3"`
	LearningEnabled        bool `env:"LEARNING_ENABLED" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "sagebot.db")
}

func (c AppConfig) GetKnowledgePath() string {
	return filepath.Join(c.RuntimePath, "knowledge")
}

func GetRuntimePath() string {
	path := os.Getenv("SAGE_RUNTIME_PATH")
	if path == "" {
		path = ".sagebot"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
