// Package assistant implements the query-processing pipeline: generate
// candidate answers from independent sources, select the best, personalize
// it with remembered facts, and feed high-confidence exchanges back into the
// retrieval index.
package assistant

import (
	"context"

	"github.com/google/uuid"
	"github.com/sandevgo/sagebot/internal/config"
	"github.com/sandevgo/sagebot/internal/core"
	"github.com/sandevgo/sagebot/internal/rag"
	"github.com/sandevgo/sagebot/internal/service/memory"
	"github.com/sandevgo/sagebot/internal/service/scoring"
	"github.com/sandevgo/sagebot/pkg/log"
)

const quotaMessage = "Unable to complete this request because the API quota is exhausted."

// learnThreshold: only exchanges the selector trusts beyond this feed the
// retrieval index.
const learnThreshold = 0.7

// RetrievalIndex is the slice of rag.Index the pipeline needs.
type RetrievalIndex interface {
	Query(ctx context.Context, question string) (string, bool)
	AddDocument(ctx context.Context, doc core.Document) error
	LearnFromInteraction(ctx context.Context, query, response string, source core.Source) error
	Statistics() rag.Statistics
}

// ToolCatalogue is the slice of tools.Manager the pipeline needs.
type ToolCatalogue interface {
	List() []string
	Execute(ctx context.Context, name string, params map[string]any) (map[string]any, error)
}

type Assistant struct {
	cfg      *config.AppConfig
	llm      core.LLMClient
	tools    ToolCatalogue
	index    RetrievalIndex
	facts    core.FactsRepository
	convs    core.ConversationsRepository
	selector *scoring.Selector
	metrics  *Metrics

	learningEnabled bool
}

func NewAssistant(
	cfg *config.AppConfig,
	llm core.LLMClient,
	catalogue ToolCatalogue,
	index RetrievalIndex,
	facts core.FactsRepository,
	convs core.ConversationsRepository,
) *Assistant {
	return &Assistant{
		cfg:             cfg,
		llm:             llm,
		tools:           catalogue,
		index:           index,
		facts:           facts,
		convs:           convs,
		selector:        scoring.NewSelector(),
		metrics:         NewMetrics(),
		learningEnabled: cfg.LearningEnabled,
	}
}

// ProcessQuery runs the full pipeline for one query. Collaborator failures
// degrade the affected candidate or step; they never abort the request.
func (a *Assistant) ProcessQuery(ctx context.Context, userID, query, sessionID string) core.Result {
	logger := log.FromCtx(ctx)

	a.metrics.TotalQueries++
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if fact, found := memory.Extract(query); found {
		if err := a.facts.StoreFact(ctx, userID, fact.Key, fact.Value); err != nil {
			logger.Error().Err(err).Str("key", fact.Key).Msg("failed to store fact")
		} else {
			logger.Debug().Str("type", fact.Type).Msg("stored personal fact")
		}
	}

	history, err := a.convs.RecentTurns(ctx, userID, sessionID, a.cfg.MaxConversationHistory)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load history, continuing without")
		history = nil
	}
	userFacts, err := a.facts.GetFacts(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load facts, continuing without")
		userFacts = nil
	}

	candidates := a.generateAll(ctx, query, history, userFacts)
	best := a.selector.Select(query, candidates)

	if len(userFacts) > 0 && best.Source != core.SourceTool {
		if refined, ok := a.refineWithMemory(ctx, best.Content, query, userFacts); ok {
			best.Content = refined
		}
	}

	if a.learningEnabled && best.Confidence > learnThreshold {
		a.metrics.LearningOpportunities++
		if err := a.index.LearnFromInteraction(ctx, query, best.Content, best.Source); err != nil {
			logger.Warn().Err(err).Msg("learning write-back failed")
		}
	}

	if err := a.convs.AddTurn(ctx, userID, sessionID, query, best.Content); err != nil {
		logger.Error().Err(err).Msg("failed to persist turn")
	}

	a.metrics.SourcesUsed[best.Source]++
	memoryUsed := len(history) > 0 || len(userFacts) > 0
	if memoryUsed {
		a.metrics.MemoryUsageCount++
	}

	logger.Info().
		Str("source", string(best.Source)).
		Float64("confidence", best.Confidence).
		Int("candidates", len(candidates)).
		Msg("query processed")

	return core.Result{
		Response:          best.Content,
		SessionID:         sessionID,
		Source:            best.Source,
		Confidence:        best.Confidence,
		LearningApplied:   a.learningEnabled,
		MemoryUsed:        memoryUsed,
		UserMemoriesCount: len(userFacts),
	}
}

// AddKnowledge seeds the retrieval index with a document outside the
// learning loop.
func (a *Assistant) AddKnowledge(ctx context.Context, content, source string) error {
	if source == "" {
		source = "user_input"
	}
	return a.index.AddDocument(ctx, core.Document{
		Content:    content,
		Source:     source,
		Confidence: 0.8,
	})
}

func (a *Assistant) EnableLearning(enabled bool) {
	a.learningEnabled = enabled
}

func (a *Assistant) History(ctx context.Context, userID, sessionID string) ([]core.Turn, error) {
	return a.convs.RecentTurns(ctx, userID, sessionID, a.cfg.MaxConversationHistory)
}

func (a *Assistant) Memories(ctx context.Context, userID string) (map[string]string, error) {
	return a.facts.GetFacts(ctx, userID)
}

func (a *Assistant) Metrics() MetricsSnapshot {
	return a.metrics.snapshot(a.index.Statistics())
}
