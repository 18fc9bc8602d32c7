package cfg

import "time"

type Cfg struct {
	// Telegram configuration
	TelegramBotToken string
	TelegramChatIDs  []string

	// Pipeline configuration
	SentimentThreshold float64
	ScanInterval       time.Duration
	DedupWindow        time.Duration
	QuoteTTL           time.Duration
	Watchlist          []string
	SourcesDir         string

	// Quote provider configuration
	QuotesAPIURL      string
	QuotesAPIKey      string
	QuotesFallbackURL string
	QuotesFallbackKey string

	// Delivery configuration
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
	SendPacing     time.Duration

	// Application configuration
	Port         string
	APIAccessKey string
	WorkerCount  int
	HTTPTimeout  time.Duration

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
