package sources

// Kind distinguishes how a source's raw feed is retrieved and filtered.
type Kind string

const (
	// KindRSS is a plain syndicated RSS/Atom feed.
	KindRSS Kind = "rss"
	// KindReddit is a subreddit feed; only posts linking off-platform are kept.
	KindReddit Kind = "reddit"
	// KindTwitter is an account timeline fetched through rotating RSS-Bridge
	// instances. The URL field holds the username.
	KindTwitter Kind = "twitter"
)

// Source is one configured feed. Static for the duration of a run.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Kind Kind   `yaml:"kind"`
}
