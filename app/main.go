package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dailydigest/app/api"
	"dailydigest/app/cfg"
	"dailydigest/app/database"
	"dailydigest/app/email"
	"dailydigest/app/feed"
	"dailydigest/app/feedback"
	"dailydigest/app/judge"
	"dailydigest/app/pipeline"
	"dailydigest/app/scoring"
	"dailydigest/app/sources"
	"dailydigest/app/summary"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting Daily Digest %s...", appCfg.Version)

	log.Println("Connecting to database...")
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()
	log.Println("Connected to database successfully")

	digestRepo := database.NewDigestRepository(db)
	feedbackRepo := database.NewFeedbackRepository(db)
	runRepo := database.NewRunRepository(db)

	if appCfg.RunDigest {
		if err := runDigest(appCfg, digestRepo, feedbackRepo, runRepo); err != nil {
			log.Fatal("Digest run failed:", err)
		}
		log.Println("Digest run completed")
		return
	}

	serve(appCfg, digestRepo, feedbackRepo)
}

// runDigest executes the pipeline once. Clients are constructed here rather
// than lazily so a misconfiguration fails before any feed is fetched.
func runDigest(appCfg *cfg.Cfg, digestRepo database.DigestRepository,
	feedbackRepo database.FeedbackRepository, runRepo database.RunRepository) error {
	ctx := context.Background()

	if appCfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for a digest run")
	}

	log.Printf("Loading sources from %s...", appCfg.SourcesFile)
	srcs, err := sources.Load(appCfg.SourcesFile)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	log.Printf("Loaded %d sources", len(srcs))

	j, err := judge.NewGemini(ctx, appCfg.GeminiAPIKey, appCfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to create judge client: %w", err)
	}

	httpClient := &http.Client{Timeout: feed.FeedFetchTimeout}
	fetcher := feed.NewFetcher(httpClient, appCfg.UserAgent)
	enricher := feed.NewEnricher(httpClient, appCfg.UserAgent)
	aggregator := feedback.NewAggregator(feedbackRepo)
	scorer := scoring.NewScorer(j)
	summarizer := summary.NewSummarizer(j)

	var mailer pipeline.MailerInterface
	if appCfg.EmailEnabled() {
		renderer := email.NewRenderer(appCfg.AppURL)
		sender := email.NewSender(email.SMTPConfig{
			Server: appCfg.SMTPServer,
			Port:   appCfg.SMTPPort,
			User:   appCfg.SMTPUser,
			Pass:   appCfg.SMTPPass,
			From:   appCfg.EmailFrom,
			To:     appCfg.EmailTo,
		})
		mailer = email.NewMailer(renderer, sender)
	} else {
		log.Println("SMTP not fully configured, digest will be stored but not emailed")
	}

	p := pipeline.New(srcs, fetcher, enricher, aggregator, scorer, summarizer,
		j, digestRepo, runRepo, mailer)

	return p.Run(ctx)
}

// serve runs the HTTP server until interrupted.
func serve(appCfg *cfg.Cfg, digestRepo database.DigestRepository,
	feedbackRepo database.FeedbackRepository) {
	log.Println("Initializing HTTP server...")
	dispatcher := api.NewGithubDispatcher(appCfg.GithubToken, appCfg.GithubRepo)
	apiHandler := api.NewHandler(digestRepo, feedbackRepo, dispatcher, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.TriggerSecret)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("Endpoints available:")
		log.Printf("  Digest:        http://localhost:%s/digests/<date>", appCfg.Port)
		log.Printf("  Feedback:      http://localhost:%s/api/feedback (POST)", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)

		if appCfg.TriggerSecret != "" {
			log.Printf("  Trigger:       http://localhost:%s/api/trigger (POST, requires bearer secret)", appCfg.Port)
		} else {
			log.Printf("  Trigger:       DISABLED (TRIGGER_SECRET not set)")
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Daily Digest server started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("Daily Digest server shutdown complete")
}
