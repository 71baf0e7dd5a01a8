package feed

import (
	"time"

	"dailydigest/app/sources"
)

const (
	// LookbackWindow drops items older than one day; the digest is a daily run.
	LookbackWindow = 24 * time.Hour

	// SnippetLength is the number of characters taken from the head of the
	// stripped body for scoring prompts.
	SnippetLength = 300

	// MinFeedSummaryLength is the minimum length for a feed-supplied
	// description to be kept as a pre-built summary.
	MinFeedSummaryLength = 50

	// ThinContentThreshold marks items whose stripped body is too short to
	// score well; such items get live-page enrichment.
	ThinContentThreshold = 500

	// EnrichConcurrency is the wave width for live-page fetches.
	EnrichConcurrency = 5

	// IDLength bounds the deterministic item id.
	IDLength = 32

	FeedFetchTimeout    = 15 * time.Second
	ArticleFetchTimeout = 10 * time.Second
)

// Item is a normalized feed entry. Created by the Fetcher; the body may be
// replaced once by the Enricher, otherwise immutable.
type Item struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Content     string       `json:"content"`
	Snippet     string       `json:"snippet"`
	FeedSummary string       `json:"feedSummary,omitempty"`
	SourceName  string       `json:"sourceName"`
	SourceKind  sources.Kind `json:"sourceKind"`
	PublishedAt time.Time    `json:"publishedAt"`
}

// Result is the outcome of fetching every configured source.
type Result struct {
	Items     []Item
	Succeeded []string
	Failed    []string
}
