package core

import "context"

type FactsRepository interface {
	// StoreFact upserts on (userID, key): last write wins.
	StoreFact(ctx context.Context, userID, key, value string) error
	GetFacts(ctx context.Context, userID string) (map[string]string, error)
}

type ConversationsRepository interface {
	AddTurn(ctx context.Context, userID, sessionID, message, response string) error
	// RecentTurns returns up to limit turns, oldest first.
	RecentTurns(ctx context.Context, userID, sessionID string, limit int) ([]Turn, error)
}
