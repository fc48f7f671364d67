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

	"techpulse/app/api"
	"techpulse/app/auth"
	"techpulse/app/cfg"
	"techpulse/app/database"
	"techpulse/app/llm"
	"techpulse/app/news"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting TechPulse server", "version", appCfg.Version)

	var (
		userRepo   database.UserRepository
		updateRepo database.UpdateRepository
	)

	if appCfg.DBDisabled {
		slog.Info("Running without a database, using in-memory stores")
		userRepo = database.NewUserRepositoryMem()
		updateRepo = database.NewUpdateRepositoryMem()
	} else {
		db, err := database.NewConnection(appCfg.DBHost, appCfg.DBPort,
			appCfg.DBUser, appCfg.DBPassword, appCfg.DBName)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}

		userRepo = database.NewUserRepository(db)
		updateRepo = database.NewUpdateRepository(db)
	}

	feedSources, err := news.LoadFeedSources(appCfg.FeedsDir)
	if err != nil {
		log.Fatal("Failed to load feed sources:", err)
	}
	slog.Info("Feed sources loaded", "count", len(feedSources))

	var summarizer news.Summarizer
	var assistant api.Assistant
	if appCfg.OpenAIKey != "" || appCfg.OpenAIBaseURL != "" {
		client := llm.NewClient(appCfg.OpenAIBaseURL, appCfg.OpenAIKey, appCfg.OpenAIModel)
		summarizer = client
		assistant = client
		slog.Info("Completion service configured", "model", appCfg.OpenAIModel)
	} else {
		assistant = llm.NewClient("", "", appCfg.OpenAIModel)
		slog.Warn("No completion service key configured, takeaways disabled")
	}

	rssAdapter := news.NewRSSAdapter(feedSources, appCfg.UserAgent, summarizer)
	searchAdapter := news.NewNewsAPIAdapter(appCfg.NewsAPIURL, appCfg.NewsAPIKey, summarizer)
	aggregator := news.NewAggregator(rssAdapter, searchAdapter)
	extractor := news.NewContentExtractor(appCfg.UserAgent)

	authService := auth.NewService(userRepo, appCfg.SessionSecret)

	handler := api.NewHandler(aggregator, extractor, assistant, authService, updateRepo)
	server := api.NewServer(handler, authService, appCfg.CORSOrigins)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
