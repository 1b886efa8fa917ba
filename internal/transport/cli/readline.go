package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/sagebot/internal/config"
	"github.com/sandevgo/sagebot/internal/providers/tools"
	"github.com/sandevgo/sagebot/internal/service/assistant"
	"github.com/sandevgo/sagebot/pkg/log"
)

const defaultUserID = "cli-local"

type ReadLine struct {
	cfg       *config.AppConfig
	assistant *assistant.Assistant
	tools     *tools.Manager
	rl        *readline.Instance

	// sessionID carries the conversation across loop iterations; the first
	// processed query assigns it.
	sessionID string
}

func NewReadLine(assistant *assistant.Assistant, catalogue *tools.Manager, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:       cfg,
		assistant: assistant,
		tools:     catalogue,
		rl:        rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if r.handleCommand(ctx, line) {
			continue
		}

		result := r.assistant.ProcessQuery(ctx, defaultUserID, line, r.sessionID)
		r.sessionID = result.SessionID

		fmt.Fprintf(r.rl.Stdout(), "%s\n", result.Response)
		fmt.Fprintf(r.rl.Stdout(), "\033[38;5;240m[%s, confidence %.2f]\033[0m\n", result.Source, result.Confidence)
	}
}

// handleCommand intercepts the /-prefixed local commands; returns true when
// the line was consumed.
func (r *ReadLine) handleCommand(ctx context.Context, line string) bool {
	switch {
	case line == "/stats":
		snapshot := r.assistant.Metrics()
		fmt.Fprintf(r.rl.Stdout(), "queries: %d, learning opportunities: %d, memory used: %d\n",
			snapshot.TotalQueries, snapshot.LearningOpportunities, snapshot.MemoryUsageCount)
		fmt.Fprintf(r.rl.Stdout(), "documents: %d, learned patterns: %d\n",
			snapshot.RAGStatistics.TotalDocuments, snapshot.RAGStatistics.LearnedPatterns)
		return true

	case line == "/memories":
		facts, err := r.assistant.Memories(ctx, defaultUserID)
		if err != nil {
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			return true
		}
		if len(facts) == 0 {
			fmt.Fprintln(r.rl.Stdout(), "No memories stored yet.")
			return true
		}
		for key, value := range facts {
			fmt.Fprintf(r.rl.Stdout(), "  %s: %s\n", key, value)
		}
		return true

	case strings.HasPrefix(line, "/learn "):
		content := strings.TrimSpace(strings.TrimPrefix(line, "/learn "))
		if err := r.assistant.AddKnowledge(ctx, content, "user_input"); err != nil {
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			return true
		}
		fmt.Fprintln(r.rl.Stdout(), "Noted.")
		return true

	case line == "/tools":
		fmt.Fprintln(r.rl.Stdout(), r.tools.Descriptions())
		return true

	case line == "/new":
		r.sessionID = ""
		fmt.Fprintln(r.rl.Stdout(), "Started a new session.")
		return true
	}

	return false
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
