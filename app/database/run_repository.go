package database

import (
	"context"
	"encoding/json"
	"fmt"

	"dailydigest/app/digest"
)

var _ RunRepository = (*SQLRunRepository)(nil)

type SQLRunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *SQLRunRepository {
	return &SQLRunRepository{db: db}
}

// StoreRun upserts run metadata keyed by date.
func (r *SQLRunRepository) StoreRun(ctx context.Context, date string, meta digest.Metadata) error {
	succeeded, err := json.Marshal(meta.SourcesSucceeded)
	if err != nil {
		return fmt.Errorf("failed to marshal succeeded sources: %w", err)
	}
	failed, err := json.Marshal(meta.SourcesFailed)
	if err != nil {
		return fmt.Errorf("failed to marshal failed sources: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs (date, total_fetched, total_scored, sources_succeeded, sources_failed, duration_ms, input_tokens, output_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			total_fetched = excluded.total_fetched,
			total_scored = excluded.total_scored,
			sources_succeeded = excluded.sources_succeeded,
			sources_failed = excluded.sources_failed,
			duration_ms = excluded.duration_ms,
			input_tokens = excluded.input_tokens,
			output_tokens = excluded.output_tokens
	`, date, meta.TotalFetched, meta.TotalScored, string(succeeded), string(failed),
		meta.DurationMs, meta.TokensUsed.InputTokens, meta.TokensUsed.OutputTokens)
	if err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}

	return nil
}
