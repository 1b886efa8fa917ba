package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/sagebot/internal/config"
	"github.com/sandevgo/sagebot/internal/providers/llm"
	"github.com/sandevgo/sagebot/internal/providers/tools"
	"github.com/sandevgo/sagebot/internal/rag"
	"github.com/sandevgo/sagebot/internal/service/assistant"
	"github.com/sandevgo/sagebot/internal/storage/sqlite"
	"github.com/sandevgo/sagebot/internal/transport/mcpserver"
	"github.com/sandevgo/sagebot/internal/transport/telegram"
	"github.com/sandevgo/sagebot/pkg/log"
	"github.com/sandevgo/sagebot/pkg/srv"
)

// assistantStack is everything a command needs after wiring: the pipeline,
// the tool catalogue it shares with transports, and the resources to release
// on shutdown.
type assistantStack struct {
	cfg       *config.AppConfig
	assistant *assistant.Assistant
	tools     *tools.Manager
	cleanups  []srv.Service
}

// NewStack wires configuration, storage, the LLM provider, the retrieval
// index and the tool catalogue into a ready Assistant. Failures here are
// fatal: there is nothing useful to run without the pipeline.
func NewStack(ctx context.Context) *assistantStack {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	openaiCfg := config.NewOpenAIConfig(ctx)

	if err := os.MkdirAll(appCfg.RuntimePath, 0755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create runtime directory")
	}

	// 2. Storage
	db, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// 3. Retrieval index
	index, err := rag.NewIndex(ctx, rag.NewFileStorage(appCfg.GetKnowledgePath()), appCfg.TopKRetrieval)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize retrieval index")
	}

	// 4. LLM provider and tools
	provider := llm.NewOpenAI(openaiCfg)
	catalogue := tools.NewManager()

	// 5. Pipeline
	assist := assistant.NewAssistant(
		appCfg,
		provider,
		catalogue,
		index,
		sqlite.NewFactsRepo(db),
		sqlite.NewConversationsRepo(db),
	)

	return &assistantStack{
		cfg:       appCfg,
		assistant: assist,
		tools:     catalogue,
		cleanups:  []srv.Service{srv.NewCleanup(db.Close)},
	}
}

// NewServices builds the long-running transports on top of the stack.
func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)

	stack := NewStack(ctx)
	services := append([]srv.Service{}, stack.cleanups...)

	if stack.cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, stack.assistant)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	if stack.cfg.EnableMCPServer {
		services = append(services, mcpserver.NewServer(stack.assistant, stack.tools))
	}

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
