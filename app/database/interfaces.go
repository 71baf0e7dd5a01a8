package database

import (
	"context"

	"dailydigest/app/digest"
)

// Vote is one of the two allowed feedback literals.
type Vote string

const (
	VoteUp   Vote = "up"
	VoteDown Vote = "down"
)

// Valid reports whether v is one of the allowed vote literals.
func (v Vote) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// FeedbackRecord is one logical vote per (date, article id). Storing a later
// vote for the same key overwrites the earlier one.
type FeedbackRecord struct {
	Date       string `json:"date"`
	ArticleID  string `json:"articleId"`
	Title      string `json:"title"`
	SourceName string `json:"sourceName"`
	Vote       Vote   `json:"vote"`
}

type DigestRepository interface {
	StoreDigest(ctx context.Context, date string, d *digest.Digest) error
	GetDigest(ctx context.Context, date string) (*digest.Digest, error)
}

type FeedbackRepository interface {
	StoreFeedback(ctx context.Context, record FeedbackRecord) error
	GetRecentFeedback(ctx context.Context, days int) ([]FeedbackRecord, error)
}

type RunRepository interface {
	StoreRun(ctx context.Context, date string, meta digest.Metadata) error
}
