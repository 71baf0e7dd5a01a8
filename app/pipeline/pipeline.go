// Package pipeline drives one digest run end to end: feedback aggregation,
// feed fetching, enrichment, scoring, tiering, summarization, persistence
// and delivery.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dailydigest/app/database"
	"dailydigest/app/digest"
	"dailydigest/app/judge"
	"dailydigest/app/scoring"
	"dailydigest/app/sources"
)

type Pipeline struct {
	srcs       []sources.Source
	fetcher    FetcherInterface
	enricher   EnricherInterface
	aggregator AggregatorInterface
	scorer     ScorerInterface
	summarizer SummarizerInterface
	judge      judge.Judge
	digestRepo database.DigestRepository
	runRepo    database.RunRepository
	mailer     MailerInterface

	now func() time.Time
}

// New wires a pipeline. mailer may be nil when SMTP delivery is not
// configured; the digest is then stored but not sent.
func New(srcs []sources.Source, fetcher FetcherInterface, enricher EnricherInterface,
	aggregator AggregatorInterface, scorer ScorerInterface, summarizer SummarizerInterface,
	j judge.Judge, digestRepo database.DigestRepository, runRepo database.RunRepository,
	mailer MailerInterface) *Pipeline {
	return &Pipeline{
		srcs:       srcs,
		fetcher:    fetcher,
		enricher:   enricher,
		aggregator: aggregator,
		scorer:     scorer,
		summarizer: summarizer,
		judge:      j,
		digestRepo: digestRepo,
		runRepo:    runRepo,
		mailer:     mailer,
		now:        time.Now,
	}
}

// Run executes one digest run for the current date. A zero-item fetch ends
// the run cleanly with nothing stored or sent. Persistence and delivery
// failures are returned; everything upstream degrades in place.
func (p *Pipeline) Run(ctx context.Context) error {
	start := p.now()
	date := start.Format("2006-01-02")

	p.judge.ResetUsage()

	slog.Info("Starting digest run", "date", date, "sources", len(p.srcs))

	prefs, err := p.aggregator.Run(ctx)
	if err != nil {
		slog.Warn("Feedback aggregation failed, scoring without preferences", "error", err)
		prefs = &scoring.LearnedPreferences{}
	}

	result := p.fetcher.FetchAll(ctx, p.srcs)
	slog.Info("Fetch completed", "items", len(result.Items),
		"succeeded", len(result.Succeeded), "failed", len(result.Failed))

	if len(result.Items) == 0 {
		slog.Info("No items fetched, skipping digest", "date", date)
		return nil
	}

	p.enricher.Run(ctx, result.Items)

	scored := p.scorer.Run(ctx, result.Items, prefs)

	top, also := digest.SelectCandidates(scored)
	candidates := make([]scoring.ScoredArticle, 0, len(top)+len(also))
	candidates = append(candidates, top...)
	candidates = append(candidates, also...)
	slog.Info("Tier selection completed", "top", len(top), "also", len(also))

	summarized := p.summarizer.Run(ctx, candidates)
	topStories, alsoInteresting := digest.Partition(summarized)

	meta := digest.Metadata{
		TotalFetched:     len(result.Items),
		TotalScored:      len(scored),
		SourcesSucceeded: result.Succeeded,
		SourcesFailed:    result.Failed,
		DurationMs:       time.Since(start).Milliseconds(),
		TokensUsed:       p.judge.Usage(),
	}

	d := &digest.Digest{
		Date:            date,
		TopStories:      topStories,
		AlsoInteresting: alsoInteresting,
		Metadata:        meta,
	}

	if err := p.digestRepo.StoreDigest(ctx, date, d); err != nil {
		return fmt.Errorf("failed to store digest: %w", err)
	}

	if err := p.runRepo.StoreRun(ctx, date, meta); err != nil {
		return fmt.Errorf("failed to store run metadata: %w", err)
	}

	if p.mailer != nil {
		if err := p.mailer.Deliver(d); err != nil {
			return fmt.Errorf("failed to deliver digest: %w", err)
		}
	} else {
		slog.Info("Email delivery not configured, digest stored only", "date", date)
	}

	slog.Info("Digest run completed", "date", date,
		"top", len(topStories), "also", len(alsoInteresting),
		"duration_ms", meta.DurationMs,
		"input_tokens", meta.TokensUsed.InputTokens,
		"output_tokens", meta.TokensUsed.OutputTokens)

	return nil
}
