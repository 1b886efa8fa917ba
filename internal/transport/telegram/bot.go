package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/sagebot/internal/config"
	"github.com/sandevgo/sagebot/internal/service/assistant"
	"github.com/sandevgo/sagebot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot       *tele.Bot
	cfg       *config.TelegramConfig
	assistant *assistant.Assistant
	sender    *sender
	ownerID   int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	assistant *assistant.Assistant,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:       b,
		cfg:       cfg,
		assistant: assistant,
		sender:    newSender(b),
		ownerID:   cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/stats", bot.handleStats)
	b.Handle("/memories", bot.handleMemories)
	b.Handle("/learn", bot.handleLearn)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	userID := strconv.FormatInt(c.Sender().ID, 10)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	result := b.assistant.ProcessQuery(ctx, userID, c.Text(), sessionID)

	if err := b.sender.sendMarkdown(ctx, c.Chat(), result.Response, false); err != nil {
		logger.Error().Err(err).Msg("failed to send telegram message")
		return c.Send(fmt.Sprintf("error: %v", err))
	}
	return nil
}

func (b *Bot) handleStats(c tele.Context) error {
	snapshot := b.assistant.Metrics()
	text := fmt.Sprintf(
		"Queries: %d\nLearning opportunities: %d\nMemory used: %d\nDocuments: %d (learned: %d)",
		snapshot.TotalQueries,
		snapshot.LearningOpportunities,
		snapshot.MemoryUsageCount,
		snapshot.RAGStatistics.TotalDocuments,
		snapshot.RAGStatistics.LearnedPatterns,
	)
	return c.Send(text)
}

func (b *Bot) handleMemories(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	facts, err := b.assistant.Memories(ctx, strconv.FormatInt(c.Sender().ID, 10))
	if err != nil {
		return c.Send(fmt.Sprintf("error: %v", err))
	}
	if len(facts) == 0 {
		return c.Send("No memories stored yet.")
	}

	var sb strings.Builder
	sb.WriteString("What I remember:\n")
	for key, value := range facts {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", key, value))
	}
	return c.Send(sb.String())
}

func (b *Bot) handleLearn(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	content := strings.TrimSpace(c.Message().Payload)
	if content == "" {
		return c.Send("Usage: /learn <fact to remember>")
	}
	if err := b.assistant.AddKnowledge(ctx, content, "user_input"); err != nil {
		return c.Send(fmt.Sprintf("error: %v", err))
	}
	return c.Send("Noted.")
}
