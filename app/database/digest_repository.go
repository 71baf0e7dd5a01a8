package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"dailydigest/app/digest"
)

var _ DigestRepository = (*SQLDigestRepository)(nil)

// SQLDigestRepository stores digests keyed by calendar date. The payload is
// serialized as JSON; one digest per date, upsert semantics.
type SQLDigestRepository struct {
	db *DB
}

func NewDigestRepository(db *DB) *SQLDigestRepository {
	return &SQLDigestRepository{db: db}
}

func (r *SQLDigestRepository) StoreDigest(ctx context.Context, date string, d *digest.Digest) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal digest: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO digests (date, payload)
		VALUES (?, ?)
		ON CONFLICT (date) DO UPDATE SET
			payload = excluded.payload,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, date, string(payload))
	if err != nil {
		return fmt.Errorf("failed to store digest: %w", err)
	}

	return nil
}

// GetDigest returns the digest for a date, or nil when none exists.
func (r *SQLDigestRepository) GetDigest(ctx context.Context, date string) (*digest.Digest, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM digests WHERE date = ?`, date).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get digest: %w", err)
	}

	var d digest.Digest
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal digest payload: %w", err)
	}

	return &d, nil
}
