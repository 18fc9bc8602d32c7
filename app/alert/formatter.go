package alert

import (
	"fmt"
	"strings"
)

// MaxMessageLength is the delivery channel's maximum message size.
const MaxMessageLength = 4096

// markdownEscaper covers the characters reserved by Telegram's legacy
// Markdown parse mode.
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// Formatter renders an alert record into user-facing message text.
// Pure and deterministic for a given record.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Run(record Record) string {
	strategy := "Long Call"
	if record.Direction == DirectionBearish {
		strategy = "Long Put"
	}

	message := fmt.Sprintf(`🚨 *Market News Alert*
🕒 %s (UTC)
📰 %s
🔄 %s
📡 %s

🎯 *Trade Setup*
• Ticker: %s
• Strategy: %s
• Strike: %s
• Price: $%s
• Sentiment: %.2f
• Exit: 50%% profit or before expiry`,
		record.CreatedAt.UTC().Format("2006-01-02 15:04"),
		markdownEscaper.Replace(record.Headline),
		record.Direction,
		markdownEscaper.Replace(record.Source),
		record.Symbol,
		strategy,
		record.Strike.String(),
		record.Price.StringFixed(2),
		record.Score,
	)

	return truncate(message, MaxMessageLength)
}

// truncate limits the message to max runes, cutting content rather than
// failing on oversized input.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
