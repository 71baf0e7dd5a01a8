package pipeline

import (
	"context"

	"dailydigest/app/digest"
	"dailydigest/app/email"
	"dailydigest/app/feed"
	"dailydigest/app/feedback"
	"dailydigest/app/scoring"
	"dailydigest/app/sources"
	"dailydigest/app/summary"
)

type FetcherInterface interface {
	FetchAll(ctx context.Context, srcs []sources.Source) feed.Result
}

type EnricherInterface interface {
	Run(ctx context.Context, items []feed.Item)
}

type AggregatorInterface interface {
	Run(ctx context.Context) (*scoring.LearnedPreferences, error)
}

type ScorerInterface interface {
	Run(ctx context.Context, items []feed.Item, prefs *scoring.LearnedPreferences) []scoring.ScoredArticle
}

type SummarizerInterface interface {
	Run(ctx context.Context, articles []scoring.ScoredArticle) []digest.SummarizedArticle
}

type MailerInterface interface {
	Deliver(d *digest.Digest) error
}

var _ FetcherInterface = (*feed.Fetcher)(nil)
var _ EnricherInterface = (*feed.Enricher)(nil)
var _ AggregatorInterface = (*feedback.Aggregator)(nil)
var _ ScorerInterface = (*scoring.Scorer)(nil)
var _ SummarizerInterface = (*summary.Summarizer)(nil)
var _ MailerInterface = (*email.Mailer)(nil)
