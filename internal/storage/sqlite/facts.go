package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type FactsRepo struct {
	db *sql.DB
}

func NewFactsRepo(db *sql.DB) *FactsRepo {
	return &FactsRepo{db: db}
}

// StoreFact upserts on (user_id, fact_key): re-extracting the same derived
// key overwrites the value instead of duplicating rows.
func (r *FactsRepo) StoreFact(ctx context.Context, userID, key, value string) error {
	query := `INSERT INTO user_facts (user_id, fact_key, fact_value) VALUES (?, ?, ?)
		ON CONFLICT(user_id, fact_key) DO UPDATE SET fact_value = excluded.fact_value`
	if _, err := r.db.ExecContext(ctx, query, userID, key, value); err != nil {
		return fmt.Errorf("failed to store fact: %w", err)
	}
	return nil
}

func (r *FactsRepo) GetFacts(ctx context.Context, userID string) (map[string]string, error) {
	query := `SELECT fact_key, fact_value FROM user_facts WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts: %w", err)
	}
	defer rows.Close()

	facts := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan fact: %w", err)
		}
		facts[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return facts, nil
}
