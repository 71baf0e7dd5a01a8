package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Persistence
	DBPath string `long:"db-path" env:"DB_PATH" default:"./digest.db" description:"Path to the SQLite database file"`

	// Pipeline configuration
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file listing feed sources"`
	AppURL      string `long:"app-url" env:"APP_URL" default:"http://localhost:8080" description:"Public base URL used for feedback links in emails"`

	// Judge service (Gemini)
	GeminiAPIKey string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key (required for scoring and summarization)"`
	GeminiModel  string `long:"gemini-model" env:"GEMINI_MODEL" default:"gemini-2.0-flash" description:"Gemini model name"`

	// Email delivery
	SMTPServer string `long:"smtp-server" env:"SMTP_SERVER" description:"SMTP server address"`
	SMTPPort   int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUser   string `long:"smtp-user" env:"SMTP_USER" description:"SMTP username"`
	SMTPPass   string `long:"smtp-pass" env:"SMTP_PASS" description:"SMTP password"`
	EmailFrom  string `long:"email-from" env:"EMAIL_FROM" description:"Sender address for the digest email"`
	EmailTo    string `long:"email-to" env:"EMAIL_TO" description:"Recipient address for the digest email"`

	// HTTP server
	Port          string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	TriggerSecret string `long:"trigger-secret" env:"TRIGGER_SECRET" description:"Bearer token required by the manual trigger endpoint"`
	GithubToken   string `long:"github-token" env:"GITHUB_TOKEN" description:"GitHub token used to dispatch the digest workflow"`
	GithubRepo    string `long:"github-repo" env:"GITHUB_REPO" description:"GitHub repository (owner/name) hosting the digest workflow"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"DailyDigest/1.0 (personal news aggregator)" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	// Run mode
	RunDigest bool `long:"run-digest" env:"RUN_DIGEST" description:"Run the digest pipeline once and exit instead of serving HTTP"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:        raw.DBPath,
		SourcesFile:   raw.SourcesFile,
		AppURL:        raw.AppURL,
		GeminiAPIKey:  raw.GeminiAPIKey,
		GeminiModel:   raw.GeminiModel,
		SMTPServer:    raw.SMTPServer,
		SMTPPort:      raw.SMTPPort,
		SMTPUser:      raw.SMTPUser,
		SMTPPass:      raw.SMTPPass,
		EmailFrom:     raw.EmailFrom,
		EmailTo:       raw.EmailTo,
		Port:          raw.Port,
		TriggerSecret: raw.TriggerSecret,
		GithubToken:   raw.GithubToken,
		GithubRepo:    raw.GithubRepo,
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
		RunDigest:     raw.RunDigest,
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
