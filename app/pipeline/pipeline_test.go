package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradepulse/tradepulse/app/alert"
	"github.com/tradepulse/tradepulse/app/news"
	"github.com/tradepulse/tradepulse/app/notify"
	"github.com/tradepulse/tradepulse/app/quotes"
)

type stubSource struct {
	name  string
	items []news.Item
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context) ([]news.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type stubSources struct {
	sources []news.Source
}

func (s *stubSources) EnabledSources() []news.Source { return s.sources }

type stubScorer struct {
	score float64
}

func (s *stubScorer) Score(text string) float64 { return s.score }

type stubMatcher struct {
	mu      sync.Mutex
	calls   int
	matches []string
}

func (m *stubMatcher) Match(text string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.matches
}

func (m *stubMatcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type stubQuotes struct {
	mu    sync.Mutex
	calls int
	quote quotes.Quote
	errs  map[string]error
}

func (q *stubQuotes) Get(ctx context.Context, symbol string) (quotes.Quote, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls++
	if err, ok := q.errs[symbol]; ok {
		return quotes.Quote{}, err
	}
	quote := q.quote
	quote.Symbol = symbol
	return quote, nil
}

func (q *stubQuotes) callCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls
}

type stubNotifier struct {
	mu        sync.Mutex
	messages  []string
	failAll   bool
	started   chan struct{}
	block     chan struct{}
	startOnce sync.Once
}

func (n *stubNotifier) Deliver(ctx context.Context, text string, recipients []string) notify.Report {
	if n.started != nil {
		n.startOnce.Do(func() { close(n.started) })
	}
	if n.block != nil {
		<-n.block
	}

	n.mu.Lock()
	n.messages = append(n.messages, text)
	n.mu.Unlock()

	report := notify.Report{}
	for _, recipient := range recipients {
		outcome := notify.Outcome{Recipient: recipient, Attempts: 1}
		if n.failAll {
			outcome.Err = &notify.PermanentError{Err: errors.New("blocked")}
			report.Failed++
		} else {
			report.Sent++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return report
}

func (n *stubNotifier) delivered() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type fixture struct {
	pipeline *Pipeline
	source   *stubSource
	matcher  *stubMatcher
	quotes   *stubQuotes
	notifier *stubNotifier
}

func newFixture(items []news.Item, score float64, matches []string) *fixture {
	source := &stubSource{name: "newswire", items: items}
	matcher := &stubMatcher{matches: matches}
	quoteGetter := &stubQuotes{
		quote: quotes.Quote{
			Strike:    decimal.NewFromInt(300),
			Price:     decimal.RequireFromString("5.50"),
			FetchedAt: time.Now(),
		},
		errs: make(map[string]error),
	}
	notifier := &stubNotifier{}

	p := New(
		&stubSources{sources: []news.Source{source}},
		alert.NewDeduplicator(24*time.Hour),
		&stubScorer{score: score},
		matcher,
		quoteGetter,
		alert.NewFormatter(),
		notifier,
		[]string{"1654552128", "987654321"},
		0.5,
	)

	return &fixture{pipeline: p, source: source, matcher: matcher, quotes: quoteGetter, notifier: notifier}
}

func nvdaItem() news.Item {
	return news.Item{
		Title:       "NVDA beats earnings, surges",
		Source:      "newswire",
		PublishedAt: time.Now(),
	}
}

func TestPipeline_EndToEndAlert(t *testing.T) {
	f := newFixture([]news.Item{nvdaItem()}, 0.8, []string{"NVDA"})

	if err := f.pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	messages := f.notifier.delivered()
	if len(messages) != 1 {
		t.Fatalf("Expected exactly one alert, got %d", len(messages))
	}

	for _, want := range []string{"NVDA", "300", "5.50"} {
		if !strings.Contains(messages[0], want) {
			t.Errorf("Expected alert to contain %q:\n%s", want, messages[0])
		}
	}

	stats := f.pipeline.Stats()
	if stats.AlertsSent != 2 {
		t.Errorf("Expected 2 successful sends (both recipients), got %d", stats.AlertsSent)
	}
	if stats.ScansCompleted != 1 {
		t.Errorf("Expected 1 completed scan, got %d", stats.ScansCompleted)
	}
}

func TestPipeline_DuplicateSuppressed(t *testing.T) {
	f := newFixture([]news.Item{nvdaItem()}, 0.8, []string{"NVDA"})

	f.pipeline.Run(context.Background())
	f.pipeline.Run(context.Background())

	if got := len(f.notifier.delivered()); got != 1 {
		t.Errorf("Identical item scanned twice must alert once, got %d alerts", got)
	}

	stats := f.pipeline.Stats()
	if stats.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate counted, got %d", stats.Duplicates)
	}
}

func TestPipeline_BelowThresholdShortCircuits(t *testing.T) {
	f := newFixture([]news.Item{nvdaItem()}, 0.3, []string{"NVDA"})

	f.pipeline.Run(context.Background())

	if f.matcher.callCount() != 0 {
		t.Error("Matcher must not be called for below-threshold items")
	}
	if f.quotes.callCount() != 0 {
		t.Error("Quote cache must not be called for below-threshold items")
	}
	if len(f.notifier.delivered()) != 0 {
		t.Error("No alert expected for below-threshold items")
	}

	stats := f.pipeline.Stats()
	if stats.BelowThreshold != 1 {
		t.Errorf("Expected 1 below-threshold count, got %d", stats.BelowThreshold)
	}
}

func TestPipeline_NegativeScorePassesGate(t *testing.T) {
	f := newFixture([]news.Item{nvdaItem()}, -0.8, []string{"NVDA"})

	f.pipeline.Run(context.Background())

	messages := f.notifier.delivered()
	if len(messages) != 1 {
		t.Fatalf("Expected bearish alert, got %d messages", len(messages))
	}
	if !strings.Contains(messages[0], "Bearish") {
		t.Errorf("Expected bearish direction in:\n%s", messages[0])
	}
}

func TestPipeline_NoMatchSkips(t *testing.T) {
	f := newFixture([]news.Item{nvdaItem()}, 0.8, nil)

	f.pipeline.Run(context.Background())

	if f.quotes.callCount() != 0 {
		t.Error("Quote cache must not be called without a matched symbol")
	}

	stats := f.pipeline.Stats()
	if stats.NoMatch != 1 {
		t.Errorf("Expected 1 no-match count, got %d", stats.NoMatch)
	}
}

func TestPipeline_QuoteFailureIsolatedPerSymbol(t *testing.T) {
	f := newFixture([]news.Item{nvdaItem()}, 0.8, []string{"AAPL", "NVDA"})
	f.quotes.errs["AAPL"] = quotes.ErrUnavailable

	f.pipeline.Run(context.Background())

	messages := f.notifier.delivered()
	if len(messages) != 1 {
		t.Fatalf("Expected one alert for the symbol with a quote, got %d", len(messages))
	}
	if !strings.Contains(messages[0], "NVDA") {
		t.Errorf("Expected NVDA alert, got:\n%s", messages[0])
	}

	stats := f.pipeline.Stats()
	if stats.QuoteUnavailable != 1 {
		t.Errorf("Expected 1 quote-unavailable count, got %d", stats.QuoteUnavailable)
	}
}

func TestPipeline_SourceFailureDoesNotAbortScan(t *testing.T) {
	failing := &stubSource{name: "down", err: errors.New("unreachable")}
	f := newFixture([]news.Item{nvdaItem()}, 0.8, []string{"NVDA"})
	f.pipeline.sources = &stubSources{sources: []news.Source{failing, f.source}}

	if err := f.pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Scan must complete despite a failing source: %v", err)
	}

	if len(f.notifier.delivered()) != 1 {
		t.Error("Items from the healthy source must still be processed")
	}
	if f.pipeline.LastScanAt().IsZero() {
		t.Error("Last-scan timestamp must advance")
	}
}

func TestPipeline_FullyFailedScanStillAdvancesLastScan(t *testing.T) {
	failing := &stubSource{name: "down", err: errors.New("unreachable")}
	f := newFixture(nil, 0.8, nil)
	f.pipeline.sources = &stubSources{sources: []news.Source{failing}}

	before := time.Now().UTC()
	if err := f.pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	lastScan := f.pipeline.LastScanAt()
	if lastScan.Before(before) {
		t.Errorf("Expected last scan at or after %v, got %v", before, lastScan)
	}
	if len(f.notifier.delivered()) != 0 {
		t.Error("Expected zero alerts from a fully failed scan")
	}
}

func TestPipeline_SingleScanInFlight(t *testing.T) {
	f := newFixture([]news.Item{nvdaItem()}, 0.8, []string{"NVDA"})
	f.notifier.started = make(chan struct{})
	f.notifier.block = make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- f.pipeline.Run(context.Background())
	}()

	// Wait until the first scan is blocked inside delivery, then a
	// concurrent trigger must be refused.
	select {
	case <-f.notifier.started:
	case <-time.After(2 * time.Second):
		t.Fatal("First scan never reached delivery")
	}

	if err := f.pipeline.Run(context.Background()); !errors.Is(err, ErrScanInProgress) {
		t.Errorf("Expected ErrScanInProgress, got %v", err)
	}

	close(f.notifier.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("First scan failed: %v", err)
	}
}

func TestPipeline_DeliveryFailureCounted(t *testing.T) {
	f := newFixture([]news.Item{nvdaItem()}, 0.8, []string{"NVDA"})
	f.notifier.failAll = true

	f.pipeline.Run(context.Background())

	stats := f.pipeline.Stats()
	if stats.DeliveryFailures != 2 {
		t.Errorf("Expected 2 delivery failures, got %d", stats.DeliveryFailures)
	}
	if stats.AlertsSent != 0 {
		t.Errorf("Expected 0 successful sends, got %d", stats.AlertsSent)
	}
}

func TestPipeline_SendTest(t *testing.T) {
	f := newFixture(nil, 0.8, nil)

	report, err := f.pipeline.SendTest(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("SendTest failed: %v", err)
	}
	if report.Sent != 2 {
		t.Errorf("Expected test message sent to both recipients, got %d", report.Sent)
	}

	messages := f.notifier.delivered()
	if len(messages) != 1 || !strings.Contains(messages[0], "Test alert for AAPL") {
		t.Errorf("Expected canned test alert, got %v", messages)
	}
}

func TestPipeline_SendTestQuoteUnavailable(t *testing.T) {
	f := newFixture(nil, 0.8, nil)
	f.quotes.errs["AAPL"] = quotes.ErrUnavailable

	if _, err := f.pipeline.SendTest(context.Background(), "AAPL"); err == nil {
		t.Error("Expected error when quote is unavailable for test alert")
	}
}
