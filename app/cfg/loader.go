package cfg

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Telegram configuration
	TelegramBotToken string `long:"telegram-bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token (required)"`
	TelegramChatIDs  string `long:"telegram-chat-ids" env:"TELEGRAM_CHAT_IDS" description:"Comma-separated Telegram chat IDs (required)"`

	// Pipeline configuration
	SentimentThreshold float64       `long:"sentiment-threshold" env:"SENTIMENT_THRESHOLD" default:"0.5" description:"Minimum absolute sentiment score for an alert"`
	ScanInterval       time.Duration `long:"scan-interval" env:"SCAN_INTERVAL" default:"10m" description:"Interval between scheduled scans"`
	DedupWindow        time.Duration `long:"dedup-window" env:"DEDUP_WINDOW" default:"24h" description:"How long a seen headline suppresses repeats"`
	QuoteTTL           time.Duration `long:"quote-ttl" env:"QUOTE_TTL" default:"15m" description:"Maximum age of a cached option quote"`
	Watchlist          string        `long:"watchlist" env:"WATCHLIST" default:"AAPL,TSLA,SPY,MSFT,AMZN,NVDA,GOOG" description:"Comma-separated ticker symbols to watch"`
	SourcesDir         string        `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing news source configuration files"`

	// Quote provider configuration
	QuotesAPIURL      string `long:"quotes-api-url" env:"QUOTES_API_URL" description:"Option chain API base URL (required)"`
	QuotesAPIKey      string `long:"quotes-api-key" env:"QUOTES_API_KEY" description:"Option chain API key"`
	QuotesFallbackURL string `long:"quotes-fallback-url" env:"QUOTES_FALLBACK_URL" description:"Secondary option chain API base URL (optional)"`
	QuotesFallbackKey string `long:"quotes-fallback-key" env:"QUOTES_FALLBACK_KEY" description:"Secondary option chain API key"`

	// Delivery configuration
	MaxRetries     int           `long:"max-retries" env:"MAX_RETRIES" default:"3" description:"Maximum send attempts per recipient"`
	RetryBaseDelay time.Duration `long:"retry-base-delay" env:"RETRY_BASE_DELAY" default:"1s" description:"Initial backoff delay between send attempts"`
	RetryMaxDelay  time.Duration `long:"retry-max-delay" env:"RETRY_MAX_DELAY" default:"30s" description:"Upper bound on backoff delay"`
	SendPacing     time.Duration `long:"send-pacing" env:"SEND_PACING_DELAY" default:"1s" description:"Pause between successive recipient sends"`

	// Application configuration
	Port         string        `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string        `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authenticated endpoints (optional)"`
	WorkerCount  int           `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background task workers"`
	HTTPTimeout  time.Duration `long:"http-timeout" env:"HTTP_TIMEOUT" default:"10s" description:"Timeout for outbound HTTP calls"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"TradePulse/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
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
		TelegramBotToken:   raw.TelegramBotToken,
		TelegramChatIDs:    splitList(raw.TelegramChatIDs),
		SentimentThreshold: raw.SentimentThreshold,
		ScanInterval:       raw.ScanInterval,
		DedupWindow:        raw.DedupWindow,
		QuoteTTL:           raw.QuoteTTL,
		Watchlist:          splitList(raw.Watchlist),
		SourcesDir:         raw.SourcesDir,
		QuotesAPIURL:       raw.QuotesAPIURL,
		QuotesAPIKey:       raw.QuotesAPIKey,
		QuotesFallbackURL:  raw.QuotesFallbackURL,
		QuotesFallbackKey:  raw.QuotesFallbackKey,
		MaxRetries:         raw.MaxRetries,
		RetryBaseDelay:     raw.RetryBaseDelay,
		RetryMaxDelay:      raw.RetryMaxDelay,
		SendPacing:         raw.SendPacing,
		Port:               raw.Port,
		APIAccessKey:       raw.APIAccessKey,
		WorkerCount:        raw.WorkerCount,
		HTTPTimeout:        raw.HTTPTimeout,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
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

// validate enforces startup-fatal configuration requirements. Missing
// credentials or recipients must halt the process before any scan runs.
func (c *Cfg) validate() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("configuration error: TELEGRAM_BOT_TOKEN is required")
	}
	if len(c.TelegramChatIDs) == 0 {
		return fmt.Errorf("configuration error: TELEGRAM_CHAT_IDS must contain at least one chat ID")
	}
	if c.QuotesAPIURL == "" {
		return fmt.Errorf("configuration error: QUOTES_API_URL is required")
	}
	if c.SentimentThreshold <= 0 || c.SentimentThreshold > 1 {
		return fmt.Errorf("configuration error: sentiment threshold must be in (0, 1], got %g", c.SentimentThreshold)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("configuration error: max retries must be at least 1, got %d", c.MaxRetries)
	}

	positiveDurations := map[string]time.Duration{
		"scan interval": c.ScanInterval,
		"dedup window":  c.DedupWindow,
		"quote TTL":     c.QuoteTTL,
		"HTTP timeout":  c.HTTPTimeout,
	}
	for name, d := range positiveDurations {
		if d <= 0 {
			return fmt.Errorf("configuration error: %s must be positive, got %s", name, d)
		}
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
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
