package feed

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Reddit feed entries carry [link] and [comments] anchors in their body.
// For link posts, [link] points to an external URL; for self-posts it points
// back at the discussion platform itself.

// ExternalLink returns the off-platform target of a reddit item's [link]
// anchor. Self-posts (no qualifying external link) return ok=false and are
// dropped by the fetcher.
func ExternalLink(rawBody string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawBody))
	if err != nil {
		return "", false
	}

	var target string
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) != "[link]" {
			return true
		}
		href, exists := sel.Attr("href")
		if !exists {
			return true
		}
		target = href
		return false
	})

	if target == "" {
		return "", false
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", false
	}

	host := parsed.Hostname()
	if host == "" || isRedditHost(host) {
		return "", false
	}

	return target, true
}

func isRedditHost(host string) bool {
	return host == "reddit.com" || strings.HasSuffix(host, ".reddit.com") ||
		host == "redd.it" || strings.HasSuffix(host, ".redd.it")
}
