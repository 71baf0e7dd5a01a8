package cfg

type Cfg struct {
	// Persistence
	DBPath string

	// Pipeline configuration
	SourcesFile string
	AppURL      string

	// Judge service (Gemini)
	GeminiAPIKey string
	GeminiModel  string

	// Email delivery
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	EmailFrom  string
	EmailTo    string

	// HTTP server
	Port          string
	TriggerSecret string
	GithubToken   string
	GithubRepo    string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string

	// Run mode
	RunDigest bool
}

// EmailEnabled reports whether SMTP delivery is fully configured.
func (c *Cfg) EmailEnabled() bool {
	return c.SMTPServer != "" && c.SMTPUser != "" && c.SMTPPass != "" &&
		c.EmailFrom != "" && c.EmailTo != ""
}
