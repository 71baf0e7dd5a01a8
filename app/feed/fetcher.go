package feed

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"dailydigest/app/sources"
)

// Fetcher retrieves raw feeds for every configured source and normalizes
// them into Items.
type Fetcher struct {
	client          *http.Client
	parser          *gofeed.Parser
	userAgent       string
	bridgeInstances []string
	now             func() time.Time
}

func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:          client,
		parser:          gofeed.NewParser(),
		userAgent:       userAgent,
		bridgeInstances: bridgeInstances,
		now:             time.Now,
	}
}

// FetchAll fetches every source concurrently. A failing source is recorded
// in Failed and never aborts the others. The merged item set is deduplicated
// by URL and sorted newest first.
func (f *Fetcher) FetchAll(ctx context.Context, srcs []sources.Source) Result {
	type outcome struct {
		items []Item
		err   error
	}

	outcomes := make([]outcome, len(srcs))

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			items, err := f.fetchSource(ctx, src)
			outcomes[i] = outcome{items: items, err: err}
		}(i, src)
	}
	wg.Wait()

	result := Result{
		Items:     []Item{},
		Succeeded: []string{},
		Failed:    []string{},
	}
	seenURLs := make(map[string]bool)

	for i, out := range outcomes {
		if out.err != nil {
			slog.Warn("Source fetch failed", "source", srcs[i].Name, "error", out.err)
			result.Failed = append(result.Failed, srcs[i].Name)
			continue
		}
		result.Succeeded = append(result.Succeeded, srcs[i].Name)
		for _, item := range out.items {
			if item.URL == "" || seenURLs[item.URL] {
				continue
			}
			seenURLs[item.URL] = true
			result.Items = append(result.Items, item)
		}
	}

	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].PublishedAt.After(result.Items[j].PublishedAt)
	})

	return result
}

func (f *Fetcher) fetchSource(ctx context.Context, src sources.Source) ([]Item, error) {
	if src.Kind == sources.KindTwitter {
		return f.fetchBridge(ctx, src)
	}

	data, err := f.fetchURL(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	parsed, err := f.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return f.normalizeItems(src, parsed), nil
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, FeedFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// normalizeItems applies the recency cutoff, the discussion-source self-post
// filter, and markup stripping, producing Items in feed order.
func (f *Fetcher) normalizeItems(src sources.Source, parsed *gofeed.Feed) []Item {
	cutoff := f.now().Add(-LookbackWindow)

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if entry.PublishedParsed == nil || !entry.PublishedParsed.After(cutoff) {
			continue
		}

		rawContent := cmp.Or(entry.Content, entry.Description)

		itemURL := entry.Link
		if src.Kind == sources.KindReddit {
			external, ok := ExternalLink(rawContent)
			if !ok {
				continue
			}
			itemURL = external
		}

		content := StripHTML(rawContent)

		item := Item{
			ID:          MakeID(cmp.Or(itemURL, entry.Link, entry.GUID, entry.Title)),
			Title:       cmp.Or(entry.Title, "Untitled"),
			URL:         itemURL,
			Content:     content,
			Snippet:     Truncate(content, SnippetLength),
			SourceName:  src.Name,
			SourceKind:  src.Kind,
			PublishedAt: *entry.PublishedParsed,
		}

		if item.Title == "Untitled" && content != "" {
			item.Title = Truncate(content, 100)
		}

		if feedSummary := StripHTML(entry.Description); len(feedSummary) >= MinFeedSummaryLength {
			item.FeedSummary = feedSummary
		}

		items = append(items, item)
	}

	return items
}
