package news

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/readeck/go-readability"
)

// BodyExtractor fetches an article page and extracts its readable text.
// Used for sources whose feed entries carry a title but no body, so the
// sentiment stage has more than a headline to work with.
type BodyExtractor struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewBodyExtractor(httpClient *http.Client, userAgent string, timeout time.Duration) *BodyExtractor {
	return &BodyExtractor{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (e *BodyExtractor) Run(ctx context.Context, link string) (string, error) {
	if link == "" {
		return "", fmt.Errorf("article link is empty")
	}

	data, err := fetchURL(ctx, e.httpClient, link, e.userAgent, e.timeout)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(data), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	if article.TextContent == "" {
		return "", fmt.Errorf("no content extracted from article")
	}

	slog.Debug("Article body extracted",
		"link", link,
		"content_length", len(article.TextContent))

	return article.TextContent, nil
}
