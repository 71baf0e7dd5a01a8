// Package summary produces short synopses for items that passed the
// relevance cutoff.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"dailydigest/app/digest"
	"dailydigest/app/feed"
	"dailydigest/app/judge"
	"dailydigest/app/scoring"
)

const (
	// Concurrency is the wave width for simultaneous judge calls.
	Concurrency = 3

	// FullContentLength bounds how much of the body is sent to the judge.
	FullContentLength = 8000

	// FallbackLength bounds the truncated-snippet fallback used when a
	// summarization call fails.
	FallbackLength = 200
)

// Summarizer annotates scored articles with summaries. Input order is
// preserved; no item is ever dropped.
type Summarizer struct {
	judge       judge.Judge
	concurrency int
}

func NewSummarizer(j judge.Judge) *Summarizer {
	return &Summarizer{judge: j, concurrency: Concurrency}
}

// Run summarizes articles in fixed-size concurrency waves: all calls of a
// wave are started together and awaited before the next wave begins.
func (s *Summarizer) Run(ctx context.Context, articles []scoring.ScoredArticle) []digest.SummarizedArticle {
	summarized := make([]digest.SummarizedArticle, len(articles))

	for start := 0; start < len(articles); start += s.concurrency {
		end := min(start+s.concurrency, len(articles))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				summarized[i] = s.summarizeOne(ctx, articles[i])
			}(i)
		}
		wg.Wait()
	}

	return summarized
}

func (s *Summarizer) summarizeOne(ctx context.Context, article scoring.ScoredArticle) digest.SummarizedArticle {
	// A feed-supplied summary saves a judge call.
	if article.FeedSummary != "" {
		return digest.SummarizedArticle{ScoredArticle: article, Summary: article.FeedSummary}
	}

	reply, err := s.judge.Complete(ctx, buildPrompt(article), "")
	if err != nil {
		slog.Error("Summarization failed", "title", article.Title, "error", err)
		return digest.SummarizedArticle{
			ScoredArticle: article,
			Summary:       feed.Truncate(article.Snippet, FallbackLength),
		}
	}

	return digest.SummarizedArticle{ScoredArticle: article, Summary: strings.TrimSpace(reply)}
}

func buildPrompt(article scoring.ScoredArticle) string {
	return fmt.Sprintf(`Summarize this article in 2-3 concise sentences. Focus on the key insight or takeaway.
Do not use phrases like "This article discusses" - just state the substance directly.
Do not start the summary with "Summary:", just get right into it. Do not repeat the title.

Title: %s
Source: %s

Content:
%s`, article.Title, article.SourceName, feed.Truncate(article.Content, FullContentLength))
}
