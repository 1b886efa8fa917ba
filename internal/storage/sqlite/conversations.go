package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/sandevgo/sagebot/pkg/log"
)

type ConversationsRepo struct {
	db *sql.DB
}

func NewConversationsRepo(db *sql.DB) *ConversationsRepo {
	return &ConversationsRepo{db: db}
}

func (r *ConversationsRepo) AddTurn(ctx context.Context, userID, sessionID, message, response string) error {
	query := `INSERT INTO conversations (user_id, session_id, message, response) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, sessionID, message, response); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// RecentTurns fetches the last 'limit' turns by ordering DESC, then reverses
// them back to chronological order for prompt construction.
func (r *ConversationsRepo) RecentTurns(ctx context.Context, userID, sessionID string, limit int) ([]core.Turn, error) {
	query := `SELECT user_id, session_id, message, response, created_at
		FROM conversations
		WHERE user_id = ? AND session_id = ?
		ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var turn core.Turn
		if err := rows.Scan(&turn.UserID, &turn.SessionID, &turn.Message, &turn.Response, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Msg("loaded conversation turns")
	return turns, nil
}
