package summary

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"dailydigest/app/feed"
	"dailydigest/app/judge"
	"dailydigest/app/scoring"
)

type fakeJudge struct {
	mu       sync.Mutex
	calls    int
	inFlight int
	maxSeen  int
	fail     map[string]bool // titles whose summarization fails
}

func (f *fakeJudge) Complete(_ context.Context, prompt, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	for title := range f.fail {
		if strings.Contains(prompt, title) {
			return "", fmt.Errorf("judge failed for %s", title)
		}
	}
	return "A concise model summary.", nil
}

func (f *fakeJudge) Usage() judge.Usage { return judge.Usage{} }
func (f *fakeJudge) ResetUsage()        {}

func scoredArticle(title string) scoring.ScoredArticle {
	return scoring.ScoredArticle{
		Item: feed.Item{
			ID:         title,
			Title:      title,
			Content:    "Full body content for " + title,
			Snippet:    "Snippet for " + title,
			SourceName: "Test Source",
		},
		Score: 8,
	}
}

func TestSummarizer_PrefersFeedSummary(t *testing.T) {
	j := &fakeJudge{}
	article := scoredArticle("With feed summary")
	article.FeedSummary = "Publisher-supplied summary text that is long enough."

	result := NewSummarizer(j).Run(context.Background(), []scoring.ScoredArticle{article})

	if result[0].Summary != article.FeedSummary {
		t.Errorf("Expected feed summary verbatim, got %q", result[0].Summary)
	}
	if j.calls != 0 {
		t.Errorf("Expected no judge calls for pre-built summaries, got %d", j.calls)
	}
}

func TestSummarizer_FailureFallsBackToSnippet(t *testing.T) {
	j := &fakeJudge{fail: map[string]bool{"Doomed article": true}}
	articles := []scoring.ScoredArticle{
		scoredArticle("Doomed article"),
		scoredArticle("Fine article"),
	}

	result := NewSummarizer(j).Run(context.Background(), articles)

	if len(result) != 2 {
		t.Fatalf("Expected 2 results (no item dropped), got %d", len(result))
	}
	if result[0].Summary != "Snippet for Doomed article" {
		t.Errorf("Expected snippet fallback, got %q", result[0].Summary)
	}
	if result[1].Summary != "A concise model summary." {
		t.Errorf("Expected model summary, got %q", result[1].Summary)
	}
}

func TestSummarizer_PreservesInputOrder(t *testing.T) {
	j := &fakeJudge{}
	var articles []scoring.ScoredArticle
	for i := 0; i < 10; i++ {
		articles = append(articles, scoredArticle(fmt.Sprintf("Article %02d", i)))
	}

	result := NewSummarizer(j).Run(context.Background(), articles)

	for i, a := range result {
		want := fmt.Sprintf("Article %02d", i)
		if a.Title != want {
			t.Errorf("Order broken at %d: expected %q, got %q", i, want, a.Title)
		}
	}
}

func TestSummarizer_BoundsConcurrency(t *testing.T) {
	j := &fakeJudge{}
	var articles []scoring.ScoredArticle
	for i := 0; i < 12; i++ {
		articles = append(articles, scoredArticle(fmt.Sprintf("Article %d", i)))
	}

	NewSummarizer(j).Run(context.Background(), articles)

	if j.maxSeen > Concurrency {
		t.Errorf("Observed %d concurrent judge calls, wave width is %d", j.maxSeen, Concurrency)
	}
	if j.calls != 12 {
		t.Errorf("Expected 12 judge calls, got %d", j.calls)
	}
}
