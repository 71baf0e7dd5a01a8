package database

import (
	"context"
	"fmt"
	"time"
)

var _ FeedbackRepository = (*SQLFeedbackRepository)(nil)

type SQLFeedbackRepository struct {
	db *DB
}

func NewFeedbackRepository(db *DB) *SQLFeedbackRepository {
	return &SQLFeedbackRepository{db: db}
}

// StoreFeedback upserts a vote keyed by (date, article id).
func (r *SQLFeedbackRepository) StoreFeedback(ctx context.Context, record FeedbackRecord) error {
	if !record.Vote.Valid() {
		return fmt.Errorf("invalid vote %q", record.Vote)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (date, article_id, title, source_name, vote)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (date, article_id) DO UPDATE SET
			title = excluded.title,
			source_name = excluded.source_name,
			vote = excluded.vote,
			created_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, record.Date, record.ArticleID, record.Title, record.SourceName, string(record.Vote))
	if err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	return nil
}

// GetRecentFeedback returns all feedback recorded within the last N days,
// newest first.
func (r *SQLFeedbackRepository) GetRecentFeedback(ctx context.Context, days int) ([]FeedbackRecord, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	rows, err := r.db.QueryContext(ctx, `
		SELECT date, article_id, title, source_name, vote
		FROM feedback
		WHERE date >= ?
		ORDER BY created_at DESC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	defer rows.Close()

	var records []FeedbackRecord
	for rows.Next() {
		var rec FeedbackRecord
		var vote string
		if err := rows.Scan(&rec.Date, &rec.ArticleID, &rec.Title, &rec.SourceName, &vote); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		rec.Vote = Vote(vote)
		records = append(records, rec)
	}

	return records, rows.Err()
}
