package news

import (
	"context"
	"time"
)

// Item is a single headline fetched from a news source. Immutable once fetched.
type Item struct {
	Title       string
	Body        string
	Link        string
	Source      string
	PublishedAt time.Time
}

// Source is a single polled news provider. Implementations must return
// items in the order the provider reported them.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Item, error)
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Type     string         `yaml:"type"` // "rss" or "json"
	APIToken string         `yaml:"api_token"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled     bool `yaml:"enabled"`
	MaxItems    int  `yaml:"max_items"`
	Timeout     int  `yaml:"timeout"`      // seconds
	ExtractBody bool `yaml:"extract_body"` // fetch article pages for title-only feeds
}
