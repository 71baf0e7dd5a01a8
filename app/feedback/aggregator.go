// Package feedback derives per-source scoring hints from recent vote history.
package feedback

import (
	"context"
	"fmt"

	"dailydigest/app/database"
	"dailydigest/app/scoring"
)

const (
	// LookbackDays bounds the feedback window used for aggregation.
	LookbackDays = 30

	// MinVotes is the minimum vote count for a source to be eligible for
	// a directive.
	MinVotes = 2

	boostRate = 0.7
	lowerRate = 0.3
)

// Aggregator rebuilds LearnedPreferences in full on every run.
type Aggregator struct {
	repo database.FeedbackRepository
}

func NewAggregator(repo database.FeedbackRepository) *Aggregator {
	return &Aggregator{repo: repo}
}

type sourceStats struct {
	up    int
	down  int
	total int
}

// Run aggregates recent votes per source into natural-language directives for
// the scorer. No feedback at all is the expected cold-start state and yields
// empty preference lists.
func (a *Aggregator) Run(ctx context.Context) (*scoring.LearnedPreferences, error) {
	records, err := a.repo.GetRecentFeedback(ctx, LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent feedback: %w", err)
	}

	prefs := &scoring.LearnedPreferences{
		SourcePreferences: []string{},
		TopicPreferences:  []string{},
	}
	if len(records) == 0 {
		return prefs, nil
	}

	stats := make(map[string]*sourceStats)
	for _, rec := range records {
		s := stats[rec.SourceName]
		if s == nil {
			s = &sourceStats{}
			stats[rec.SourceName] = s
		}
		if rec.Vote == database.VoteUp {
			s.up++
		} else {
			s.down++
		}
		s.total++
	}

	for source, s := range stats {
		if s.total < MinVotes {
			continue
		}

		upRate := float64(s.up) / float64(s.total)
		switch {
		case upRate >= boostRate:
			prefs.SourcePreferences = append(prefs.SourcePreferences,
				fmt.Sprintf("- User upvoted %d/%d articles from %s - boost scores from this source", s.up, s.total, source))
		case upRate <= lowerRate:
			prefs.SourcePreferences = append(prefs.SourcePreferences,
				fmt.Sprintf("- User downvoted %d/%d articles from %s - lower scores from this source", s.down, s.total, source))
		}
	}

	return prefs, nil
}
