package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tradepulse/tradepulse/app/alert"
	"github.com/tradepulse/tradepulse/app/api"
	"github.com/tradepulse/tradepulse/app/cfg"
	"github.com/tradepulse/tradepulse/app/news"
	"github.com/tradepulse/tradepulse/app/notify"
	"github.com/tradepulse/tradepulse/app/pipeline"
	"github.com/tradepulse/tradepulse/app/quotes"
	"github.com/tradepulse/tradepulse/app/sentiment"
	"github.com/tradepulse/tradepulse/app/tasks"
	"github.com/tradepulse/tradepulse/app/watchlist"
)

func main() {
	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
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

	slog.Info("Starting TradePulse server", "version", appCfg.Version)

	// Load news source configurations
	configCache := news.NewConfigCache(appCfg.SourcesDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load news source configurations", "dir", appCfg.SourcesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded news source configurations", "count", configCache.GetConfigCount(), "dir", appCfg.SourcesDir)

	// Watchlist and matcher
	watch, err := watchlist.New(appCfg.Watchlist)
	if err != nil {
		slog.Error("Failed to build watchlist", "error", err)
		os.Exit(1)
	}
	matcher := watchlist.NewMatcher(watch)
	slog.Info("Watchlist initialized", "symbols", watch.Len())

	// News sources with optional body extraction
	httpClient := news.NewDefaultHTTPClient(appCfg.HTTPTimeout)
	extractor := news.NewBodyExtractor(httpClient, appCfg.UserAgent, appCfg.HTTPTimeout)
	registry := news.NewRegistry(configCache, httpClient, appCfg.UserAgent, extractor)

	// Quote providers behind a TTL cache
	var provider quotes.Provider = quotes.NewChainProvider(
		appCfg.QuotesAPIURL, appCfg.QuotesAPIKey, httpClient, appCfg.UserAgent, appCfg.HTTPTimeout)
	if appCfg.QuotesFallbackURL != "" {
		secondary := quotes.NewChainProvider(
			appCfg.QuotesFallbackURL, appCfg.QuotesFallbackKey, httpClient, appCfg.UserAgent, appCfg.HTTPTimeout)
		provider = quotes.NewFallbackProvider(provider, secondary)
	}
	quoteCache := quotes.NewCache(provider, appCfg.QuoteTTL)

	// Delivery
	telegram := notify.NewTelegram(appCfg.TelegramBotToken, httpClient, appCfg.HTTPTimeout)
	policy := notify.RetryPolicy{
		MaxAttempts: appCfg.MaxRetries,
		BaseDelay:   appCfg.RetryBaseDelay,
		Multiplier:  2,
		MaxDelay:    appCfg.RetryMaxDelay,
	}
	notifier := notify.NewNotifier(telegram, policy, appCfg.SendPacing)

	// Pipeline
	scanner := pipeline.New(
		registry,
		alert.NewDeduplicator(appCfg.DedupWindow),
		sentiment.NewLexiconScorer(),
		matcher,
		quoteCache,
		alert.NewFormatter(),
		notifier,
		appCfg.TelegramChatIDs,
		appCfg.SentimentThreshold,
	)

	// Background scheduler
	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.ScanInterval.String())
	scheduler := tasks.NewScheduler(scanner, appCfg.ScanInterval, appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	apiHandler := api.NewHandler(scanner, scheduler, watch, configCache)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("TradePulse server started")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("TradePulse server shutdown complete")
}
