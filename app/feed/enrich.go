package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"codeberg.org/readeck/go-readability"
)

// Enricher replaces thin item bodies with readable text extracted from the
// live page. Pure best-effort: any failure leaves the item unchanged and is
// never surfaced to the pipeline.
type Enricher struct {
	client      *http.Client
	userAgent   string
	concurrency int
}

func NewEnricher(client *http.Client, userAgent string) *Enricher {
	return &Enricher{
		client:      client,
		userAgent:   userAgent,
		concurrency: EnrichConcurrency,
	}
}

// Run enriches items whose stripped body is below ThinContentThreshold and
// that have a URL, in fixed-width sequential waves. The item's source name is
// annotated with the resolved page domain so aggregator-sourced content is
// attributed to its true origin.
func (e *Enricher) Run(ctx context.Context, items []Item) {
	var thin []int
	for i := range items {
		if len(items[i].Content) < ThinContentThreshold && items[i].URL != "" {
			thin = append(thin, i)
		}
	}
	if len(thin) == 0 {
		return
	}

	slog.Info("Fetching full content for thin articles", "count", len(thin))

	for start := 0; start < len(thin); start += e.concurrency {
		end := min(start+e.concurrency, len(thin))

		var wg sync.WaitGroup
		for _, idx := range thin[start:end] {
			wg.Add(1)
			go func(item *Item) {
				defer wg.Done()
				e.enrichItem(ctx, item)
			}(&items[idx])
		}
		wg.Wait()
	}
}

func (e *Enricher) enrichItem(ctx context.Context, item *Item) {
	content := e.fetchReadable(ctx, item.URL)
	if len(content) > len(item.Content) {
		item.Content = content
		item.Snippet = Truncate(content, SnippetLength)
	}

	if domain := ExtractDomain(item.URL); domain != "" {
		item.SourceName = fmt.Sprintf("%s (via %s)", domain, item.SourceName)
	}
}

// fetchReadable returns the extracted article text for a URL, or an empty
// string on any failure or timeout.
func (e *Enricher) fetchReadable(ctx context.Context, pageURL string) string {
	timeoutCtx, cancel := context.WithTimeout(ctx, ArticleFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		slog.Debug("Article fetch failed", "url", pageURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "text/html") {
		return ""
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		slog.Debug("Content extraction failed", "url", pageURL, "error", err)
		return ""
	}

	return collapseWhitespace(article.TextContent)
}
