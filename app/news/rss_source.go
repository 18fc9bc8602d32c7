package news

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

var _ Source = (*RSSSource)(nil)

// RSSSource polls an RSS/Atom feed and normalizes its entries into items.
type RSSSource struct {
	config       *Config
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
}

func NewRSSSource(config *Config, httpClient *http.Client, userAgent string) *RSSSource {
	return &RSSSource{
		config:       config,
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
	}
}

func (s *RSSSource) Name() string {
	return s.config.Name
}

func (s *RSSSource) Fetch(ctx context.Context) ([]Item, error) {
	data, err := fetchURL(ctx, s.httpClient, s.config.URL, s.userAgent, time.Duration(s.config.Settings.Timeout)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := s.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry == nil {
			continue
		}

		item := Item{
			Title:  entry.Title,
			Body:   entry.Description,
			Link:   entry.Link,
			Source: s.config.Name,
		}
		if item.Body == "" {
			item.Body = entry.Content
		}
		if entry.PublishedParsed != nil {
			item.PublishedAt = *entry.PublishedParsed
		}

		items = append(items, item)

		if s.config.Settings.MaxItems > 0 && len(items) >= s.config.Settings.MaxItems {
			break
		}
	}

	return items, nil
}
