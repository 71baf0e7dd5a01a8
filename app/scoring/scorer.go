package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"dailydigest/app/feed"
	"dailydigest/app/judge"
)

// BatchSize bounds prompt size and cost per judge call.
const BatchSize = 20

// FailedReason is attached to every item of a batch whose judge call failed
// or returned unparseable output.
const FailedReason = "Scoring failed"

// ScoredArticle is a feed item annotated with a relevance score and reason.
// Never mutated after creation.
type ScoredArticle struct {
	feed.Item
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// LearnedPreferences carries feedback-derived directives injected verbatim
// into the scoring prompt. Topic preferences are reserved for future use.
type LearnedPreferences struct {
	SourcePreferences []string `json:"sourcePreferences"`
	TopicPreferences  []string `json:"topicPreferences"`
}

// Empty reports whether there are no directives at all.
func (p *LearnedPreferences) Empty() bool {
	return p == nil || (len(p.SourcePreferences) == 0 && len(p.TopicPreferences) == 0)
}

type scoreResult struct {
	Index  int    `json:"index"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Scorer asks the judge to score items in fixed-size batches.
type Scorer struct {
	judge judge.Judge
}

func NewScorer(j judge.Judge) *Scorer {
	return &Scorer{judge: j}
}

// Run scores every item and returns the result sorted by score descending.
// Ties keep the original input order. A failed batch degrades to score 0
// with an explicit reason; items are never dropped.
func (s *Scorer) Run(ctx context.Context, items []feed.Item, prefs *LearnedPreferences) []ScoredArticle {
	scored := make([]ScoredArticle, 0, len(items))

	for start := 0; start < len(items); start += BatchSize {
		end := min(start+BatchSize, len(items))
		batch := items[start:end]

		results, err := s.scoreBatch(ctx, batch, prefs)
		if err != nil {
			slog.Error("Scoring batch failed", "batch_start", start, "size", len(batch), "error", err)
			for _, item := range batch {
				scored = append(scored, ScoredArticle{Item: item, Score: 0, Reason: FailedReason})
			}
			continue
		}

		for _, result := range results {
			if result.Index < 0 || result.Index >= len(batch) {
				slog.Warn("Judge returned out-of-range index, discarding", "index", result.Index, "batch_size", len(batch))
				continue
			}
			scored = append(scored, ScoredArticle{
				Item:   batch[result.Index],
				Score:  clampScore(result.Score),
				Reason: result.Reason,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

func (s *Scorer) scoreBatch(ctx context.Context, batch []feed.Item, prefs *LearnedPreferences) ([]scoreResult, error) {
	reply, err := s.judge.Complete(ctx, buildPrompt(batch, prefs), InterestProfile)
	if err != nil {
		return nil, err
	}

	return parseScoreResults(reply)
}

func buildPrompt(batch []feed.Item, prefs *LearnedPreferences) string {
	var sb strings.Builder

	sb.WriteString("Score the following articles for relevance to the reader.\n")

	if !prefs.Empty() {
		if len(prefs.SourcePreferences) > 0 {
			sb.WriteString("\nLEARNED SOURCE PREFERENCES:\n")
			for _, line := range prefs.SourcePreferences {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
		}
		if len(prefs.TopicPreferences) > 0 {
			sb.WriteString("\nLEARNED TOPIC PREFERENCES:\n")
			for _, line := range prefs.TopicPreferences {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
		}
	}

	sb.WriteString("\nReturn ONLY a JSON array with one object per article: ")
	sb.WriteString(`[{"index": 0, "score": 7, "reason": "brief reason"}, ...]`)
	sb.WriteString("\n\nArticles:\n\n")

	for i, item := range batch {
		fmt.Fprintf(&sb, "[%d] %q (%s)\n%s\n\n", i, item.Title, item.SourceName, item.Snippet)
	}

	return sb.String()
}

// parseScoreResults extracts the first bracketed array-looking substring from
// the raw reply, tolerating surrounding commentary.
func parseScoreResults(reply string) ([]scoreResult, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in scoring response")
	}

	var results []scoreResult
	if err := json.Unmarshal([]byte(reply[start:end+1]), &results); err != nil {
		return nil, fmt.Errorf("failed to parse scoring response: %w", err)
	}

	return results, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
