package digest

import (
	"fmt"
	"testing"

	"dailydigest/app/feed"
	"dailydigest/app/scoring"
)

func scoredWith(scores ...int) []scoring.ScoredArticle {
	articles := make([]scoring.ScoredArticle, len(scores))
	for i, s := range scores {
		articles[i] = scoring.ScoredArticle{
			Item:  feed.Item{ID: fmt.Sprintf("id-%d", i), Title: fmt.Sprintf("Article %d", i)},
			Score: s,
		}
	}
	return articles
}

func TestSelectCandidates_Boundaries(t *testing.T) {
	scored := scoredWith(10, 8, 7, 6, 5, 0)

	top, also := SelectCandidates(scored)

	if len(top) != 2 {
		t.Fatalf("Expected 2 top stories (scores 10, 8), got %d", len(top))
	}
	for _, a := range top {
		if a.Score < TopStoryThreshold {
			t.Errorf("Top story with score %d below top threshold %d", a.Score, TopStoryThreshold)
		}
	}

	if len(also) != 2 {
		t.Fatalf("Expected 2 also-interesting (scores 7, 6), got %d", len(also))
	}
	for _, a := range also {
		if a.Score < Threshold || a.Score >= TopStoryThreshold {
			t.Errorf("Also-interesting score %d outside [%d,%d)", a.Score, Threshold, TopStoryThreshold)
		}
	}
}

func TestSelectCandidates_CapsKeepHighestScores(t *testing.T) {
	scored := scoredWith(10, 10, 9, 9, 8, 8, 8, 7, 7, 7, 7, 7, 6, 6, 6, 6, 6, 6, 6, 6)

	top, also := SelectCandidates(scored)

	if len(top) != MaxTopStories {
		t.Errorf("Expected top tier capped at %d, got %d", MaxTopStories, len(top))
	}
	if len(also) != MaxAlsoInteresting {
		t.Errorf("Expected also tier capped at %d, got %d", MaxAlsoInteresting, len(also))
	}

	// Truncation keeps the head of the sorted list
	if top[0].Score != 10 || top[len(top)-1].Score != 8 {
		t.Errorf("Expected top tier to keep highest scores, got first=%d last=%d", top[0].Score, top[len(top)-1].Score)
	}
}

func TestSelectCandidates_DisjointTiers(t *testing.T) {
	scored := scoredWith(9, 8, 7, 6, 6, 5)

	top, also := SelectCandidates(scored)

	seen := make(map[string]bool)
	for _, a := range top {
		seen[a.ID] = true
	}
	for _, a := range also {
		if seen[a.ID] {
			t.Errorf("Article %s appears in both tiers", a.ID)
		}
	}
}

func TestPartition_RoundTripsSelection(t *testing.T) {
	scored := scoredWith(9, 8, 7, 6)
	top, also := SelectCandidates(scored)

	summarized := make([]SummarizedArticle, 0, len(top)+len(also))
	for _, a := range append(append([]scoring.ScoredArticle{}, top...), also...) {
		summarized = append(summarized, SummarizedArticle{ScoredArticle: a, Summary: "s"})
	}

	reTop, reAlso := Partition(summarized)

	if len(reTop) != len(top) || len(reAlso) != len(also) {
		t.Errorf("Re-partition changed tier sizes: top %d->%d, also %d->%d",
			len(top), len(reTop), len(also), len(reAlso))
	}
}
