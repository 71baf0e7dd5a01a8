package feed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"dailydigest/app/sources"
)

// Public RSS-Bridge instances are flaky; a twitter source rotates across a
// shuffled candidate list before giving up for the run.

var bridgeInstances = []string{
	"https://rss-bridge.org/bridge01",
	"https://rss-bridge.org/bridge02",
}

// BridgeMaxRetries caps how many instances are tried per source.
const BridgeMaxRetries = 2

func bridgeURL(instance, username string) string {
	return fmt.Sprintf("%s/?action=display&bridge=XTwitterBridge&context=By+username&u=%s&format=Atom", instance, username)
}

// fetchBridge retrieves a twitter-type source. The source URL field holds the
// account username.
func (f *Fetcher) fetchBridge(ctx context.Context, src sources.Source) ([]Item, error) {
	username := src.URL
	instances := shuffled(f.bridgeInstances)

	attempts := min(len(instances), BridgeMaxRetries)
	for i := 0; i < attempts; i++ {
		data, err := f.fetchURL(ctx, bridgeURL(instances[i], username))
		if err != nil {
			slog.Warn("RSS-Bridge instance failed", "instance", instances[i], "username", username, "error", err)
			continue
		}

		parsed, err := f.parser.ParseString(string(data))
		if err != nil {
			slog.Warn("RSS-Bridge response unparseable", "instance", instances[i], "username", username, "error", err)
			continue
		}

		return f.normalizeItems(src, parsed), nil
	}

	return nil, fmt.Errorf("all RSS-Bridge instances failed for @%s", username)
}

func shuffled(instances []string) []string {
	result := make([]string, len(instances))
	copy(result, instances)
	rand.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})
	return result
}
