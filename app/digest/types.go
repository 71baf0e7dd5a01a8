// Package digest defines the run's terminal data shapes and the score-based
// tier boundaries.
package digest

import (
	"dailydigest/app/judge"
	"dailydigest/app/scoring"
)

const (
	// Threshold is the minimum score for an item to appear anywhere in
	// the digest.
	Threshold = 6

	// TopStoryThreshold is the minimum score for the headline tier.
	TopStoryThreshold = 8

	MaxTopStories      = 5
	MaxAlsoInteresting = 10
)

// SummarizedArticle is the terminal item form persisted into a digest.
type SummarizedArticle struct {
	scoring.ScoredArticle
	Summary string `json:"summary"`
}

// Digest is the assembled output of one pipeline run, one per calendar date.
// Re-running for the same date overwrites the prior digest.
type Digest struct {
	Date            string              `json:"date"`
	TopStories      []SummarizedArticle `json:"topStories"`
	AlsoInteresting []SummarizedArticle `json:"alsoInteresting"`
	Metadata        Metadata            `json:"metadata"`
}

// Metadata describes a run. Descriptive only; not consumed by later stages.
type Metadata struct {
	TotalFetched     int         `json:"totalFetched"`
	TotalScored      int         `json:"totalScored"`
	SourcesSucceeded []string    `json:"sourcesSucceeded"`
	SourcesFailed    []string    `json:"sourcesFailed"`
	DurationMs       int64       `json:"durationMs"`
	TokensUsed       judge.Usage `json:"tokensUsed"`
}
