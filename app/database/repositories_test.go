package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dailydigest/app/digest"
	"dailydigest/app/feed"
	"dailydigest/app/scoring"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func sampleDigest(date string) *digest.Digest {
	return &digest.Digest{
		Date: date,
		TopStories: []digest.SummarizedArticle{
			{
				ScoredArticle: scoring.ScoredArticle{
					Item:  feed.Item{ID: "abc", Title: "Top story", URL: "https://example.com/1", SourceName: "Blog"},
					Score: 9, Reason: "highly relevant",
				},
				Summary: "A short synopsis.",
			},
		},
		AlsoInteresting: []digest.SummarizedArticle{},
		Metadata: digest.Metadata{
			TotalFetched:     10,
			TotalScored:      10,
			SourcesSucceeded: []string{"Blog"},
			SourcesFailed:    []string{},
			DurationMs:       1234,
		},
	}
}

func TestDigestRepository_StoreAndGet(t *testing.T) {
	repo := NewDigestRepository(testDB(t))
	ctx := context.Background()

	if err := repo.StoreDigest(ctx, "2026-09-01", sampleDigest("2026-09-01")); err != nil {
		t.Fatalf("StoreDigest failed: %v", err)
	}

	got, err := repo.GetDigest(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("GetDigest failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected digest, got nil")
	}
	if len(got.TopStories) != 1 || got.TopStories[0].Title != "Top story" {
		t.Errorf("Digest payload did not round-trip: %+v", got)
	}
}

func TestDigestRepository_GetMissingReturnsNil(t *testing.T) {
	repo := NewDigestRepository(testDB(t))

	got, err := repo.GetDigest(context.Background(), "1999-01-01")
	if err != nil {
		t.Fatalf("GetDigest failed: %v", err)
	}
	if got != nil {
		t.Error("Expected nil for missing date")
	}
}

func TestDigestRepository_StoreOverwrites(t *testing.T) {
	repo := NewDigestRepository(testDB(t))
	ctx := context.Background()

	first := sampleDigest("2026-09-01")
	if err := repo.StoreDigest(ctx, "2026-09-01", first); err != nil {
		t.Fatalf("StoreDigest failed: %v", err)
	}

	second := sampleDigest("2026-09-01")
	second.TopStories[0].Title = "Replacement story"
	if err := repo.StoreDigest(ctx, "2026-09-01", second); err != nil {
		t.Fatalf("Second StoreDigest failed: %v", err)
	}

	got, err := repo.GetDigest(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("GetDigest failed: %v", err)
	}
	if got.TopStories[0].Title != "Replacement story" {
		t.Errorf("Expected overwrite, got %q", got.TopStories[0].Title)
	}
}

func TestFeedbackRepository_UpsertByDateAndArticle(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))
	ctx := context.Background()

	record := FeedbackRecord{
		Date:       "2026-09-01",
		ArticleID:  "abc",
		Title:      "Top story",
		SourceName: "Blog",
		Vote:       VoteUp,
	}
	if err := repo.StoreFeedback(ctx, record); err != nil {
		t.Fatalf("StoreFeedback failed: %v", err)
	}

	// Changing our mind overwrites, it does not duplicate
	record.Vote = VoteDown
	if err := repo.StoreFeedback(ctx, record); err != nil {
		t.Fatalf("Second StoreFeedback failed: %v", err)
	}

	records, err := repo.GetRecentFeedback(ctx, 7)
	if err != nil {
		t.Fatalf("GetRecentFeedback failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record after upsert, got %d", len(records))
	}
	if records[0].Vote != VoteDown {
		t.Errorf("Expected overwritten vote 'down', got %q", records[0].Vote)
	}
}

func TestFeedbackRepository_RejectsInvalidVote(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	err := repo.StoreFeedback(context.Background(), FeedbackRecord{
		Date:      "2026-09-01",
		ArticleID: "abc",
		Vote:      Vote("sideways"),
	})
	if err == nil {
		t.Error("Expected error for invalid vote literal")
	}
}

func TestFeedbackRepository_WindowExcludesOldRecords(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))
	ctx := context.Background()

	old := FeedbackRecord{Date: "2020-01-01", ArticleID: "old", Vote: VoteUp}
	recent := FeedbackRecord{
		Date:      time.Now().UTC().Format("2006-01-02"),
		ArticleID: "new",
		Vote:      VoteUp,
	}
	for _, rec := range []FeedbackRecord{old, recent} {
		if err := repo.StoreFeedback(ctx, rec); err != nil {
			t.Fatalf("StoreFeedback failed: %v", err)
		}
	}

	records, err := repo.GetRecentFeedback(ctx, 30)
	if err != nil {
		t.Fatalf("GetRecentFeedback failed: %v", err)
	}
	if len(records) != 1 || records[0].ArticleID != "new" {
		t.Errorf("Expected only the recent record, got %+v", records)
	}
}

func TestRunRepository_StoreUpserts(t *testing.T) {
	repo := NewRunRepository(testDB(t))
	ctx := context.Background()

	meta := sampleDigest("2026-09-01").Metadata
	if err := repo.StoreRun(ctx, "2026-09-01", meta); err != nil {
		t.Fatalf("StoreRun failed: %v", err)
	}

	meta.TotalFetched = 99
	if err := repo.StoreRun(ctx, "2026-09-01", meta); err != nil {
		t.Fatalf("Second StoreRun failed: %v", err)
	}
}

func TestVoteValid(t *testing.T) {
	cases := []struct {
		vote  Vote
		valid bool
	}{
		{VoteUp, true},
		{VoteDown, true},
		{Vote("sideways"), false},
		{Vote(""), false},
	}

	for _, tc := range cases {
		if got := tc.vote.Valid(); got != tc.valid {
			t.Errorf("Vote(%q).Valid() = %v, expected %v", tc.vote, got, tc.valid)
		}
	}
}
