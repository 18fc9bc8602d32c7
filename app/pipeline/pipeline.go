package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/tradepulse/tradepulse/app/alert"
	"github.com/tradepulse/tradepulse/app/news"
	"github.com/tradepulse/tradepulse/app/notify"
	"github.com/tradepulse/tradepulse/app/quotes"
	"github.com/tradepulse/tradepulse/app/sentiment"
)

// ErrScanInProgress is returned when a scan is requested while another
// one is still running. At most one scan executes at a time.
var ErrScanInProgress = errors.New("scan already in progress")

type SourceLister interface {
	EnabledSources() []news.Source
}

type Deduplicator interface {
	Seen(title, body string) bool
}

type Matcher interface {
	Match(text string) []string
}

type QuoteGetter interface {
	Get(ctx context.Context, symbol string) (quotes.Quote, error)
}

type Formatter interface {
	Run(record alert.Record) string
}

type Deliverer interface {
	Deliver(ctx context.Context, text string, recipients []string) notify.Report
}

// Stats is a snapshot of pipeline counters for observability.
type Stats struct {
	LastScanAt       time.Time
	ScansCompleted   int
	ItemsProcessed   int
	Duplicates       int
	BelowThreshold   int
	NoMatch          int
	QuoteUnavailable int
	AlertsSent       int
	DeliveryFailures int
}

// Pipeline sequences one scan: poll sources, then per item run
// dedup -> score -> threshold gate -> match -> quote -> format -> deliver.
// Any stage's negative outcome skips the item, never the batch.
type Pipeline struct {
	sources    SourceLister
	dedup      Deduplicator
	scorer     sentiment.Scorer
	matcher    Matcher
	quotes     QuoteGetter
	formatter  Formatter
	notifier   Deliverer
	recipients []string
	threshold  float64

	runMu sync.Mutex

	statsMu sync.Mutex
	stats   Stats
}

func New(sources SourceLister, dedup Deduplicator, scorer sentiment.Scorer, matcher Matcher,
	quoteGetter QuoteGetter, formatter Formatter, notifier Deliverer,
	recipients []string, threshold float64) *Pipeline {
	return &Pipeline{
		sources:    sources,
		dedup:      dedup,
		scorer:     scorer,
		matcher:    matcher,
		quotes:     quoteGetter,
		formatter:  formatter,
		notifier:   notifier,
		recipients: recipients,
		threshold:  threshold,
	}
}

// Run executes a full scan. Returns ErrScanInProgress when another scan
// holds the run lock. The last-scan timestamp advances on every
// completed scan, including ones that produced no alerts.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.runMu.TryLock() {
		return ErrScanInProgress
	}
	defer p.runMu.Unlock()

	startedAt := time.Now()
	var scanStats Stats

	sources := p.sources.EnabledSources()
	for _, source := range sources {
		items, err := source.Fetch(ctx)
		if err != nil {
			slog.Error("Source fetch failed", "source", source.Name(), "error", err)
			continue
		}

		for _, item := range items {
			p.processItem(ctx, item, &scanStats)
		}
	}

	p.statsMu.Lock()
	p.stats.LastScanAt = time.Now().UTC()
	p.stats.ScansCompleted++
	p.stats.ItemsProcessed += scanStats.ItemsProcessed
	p.stats.Duplicates += scanStats.Duplicates
	p.stats.BelowThreshold += scanStats.BelowThreshold
	p.stats.NoMatch += scanStats.NoMatch
	p.stats.QuoteUnavailable += scanStats.QuoteUnavailable
	p.stats.AlertsSent += scanStats.AlertsSent
	p.stats.DeliveryFailures += scanStats.DeliveryFailures
	p.statsMu.Unlock()

	slog.Info("Scan completed",
		"duration", time.Since(startedAt).String(),
		"sources", len(sources),
		"items", scanStats.ItemsProcessed,
		"duplicates", scanStats.Duplicates,
		"below_threshold", scanStats.BelowThreshold,
		"no_match", scanStats.NoMatch,
		"quote_unavailable", scanStats.QuoteUnavailable,
		"alerts_sent", scanStats.AlertsSent)

	return nil
}

func (p *Pipeline) processItem(ctx context.Context, item news.Item, scanStats *Stats) {
	scanStats.ItemsProcessed++

	if p.dedup.Seen(item.Title, item.Body) {
		scanStats.Duplicates++
		return
	}

	text := itemText(item)
	score := p.scorer.Score(text)
	if math.Abs(score) < p.threshold {
		scanStats.BelowThreshold++
		return
	}

	symbols := p.matcher.Match(text)
	if len(symbols) == 0 {
		scanStats.NoMatch++
		return
	}

	for _, symbol := range symbols {
		quote, err := p.quotes.Get(ctx, symbol)
		if err != nil {
			scanStats.QuoteUnavailable++
			slog.Warn("Quote unavailable, skipping alert", "symbol", symbol, "headline", item.Title, "error", err)
			continue
		}

		record := alert.NewRecord(symbol, item.Title, item.Source, score, quote.Strike, quote.Price)
		message := p.formatter.Run(record)

		report := p.notifier.Deliver(ctx, message, p.recipients)
		scanStats.AlertsSent += report.Sent
		scanStats.DeliveryFailures += report.Failed

		slog.Info("Alert dispatched",
			"id", record.ID,
			"symbol", symbol,
			"direction", string(record.Direction),
			"score", fmt.Sprintf("%.2f", score),
			"sent", report.Sent,
			"failed", report.Failed)
	}
}

// SendTest delivers a canned alert for the given symbol, going through
// the live quote path so the whole delivery chain is exercised.
func (p *Pipeline) SendTest(ctx context.Context, symbol string) (notify.Report, error) {
	quote, err := p.quotes.Get(ctx, symbol)
	if err != nil {
		return notify.Report{}, fmt.Errorf("failed to resolve quote for test alert: %w", err)
	}

	headline := fmt.Sprintf("Test alert for %s on breakthrough news", symbol)
	record := alert.NewRecord(symbol, headline, "MockNews", 0.7, quote.Strike, quote.Price)
	message := p.formatter.Run(record)

	return p.notifier.Deliver(ctx, message, p.recipients), nil
}

func (p *Pipeline) Stats() Stats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

func (p *Pipeline) LastScanAt() time.Time {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats.LastScanAt
}

func itemText(item news.Item) string {
	if item.Body == "" {
		return item.Title
	}
	return strings.TrimSpace(item.Title + " " + item.Body)
}
