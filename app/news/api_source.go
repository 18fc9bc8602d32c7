package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var _ Source = (*APISource)(nil)

// APISource polls a JSON news API (Marketaux-style response shape).
type APISource struct {
	config     *Config
	httpClient *http.Client
	userAgent  string
}

type apiResponse struct {
	Data []apiArticle `json:"data"`
}

type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

func NewAPISource(config *Config, httpClient *http.Client, userAgent string) *APISource {
	return &APISource{
		config:     config,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (s *APISource) Name() string {
	return s.config.Name
}

func (s *APISource) Fetch(ctx context.Context) ([]Item, error) {
	requestURL, err := s.buildURL()
	if err != nil {
		return nil, err
	}

	data, err := fetchURL(ctx, s.httpClient, requestURL, s.userAgent, time.Duration(s.config.Settings.Timeout)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news API: %w", err)
	}

	var response apiResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse news API response: %w", err)
	}

	items := make([]Item, 0, len(response.Data))
	for _, article := range response.Data {
		item := Item{
			Title:  article.Title,
			Body:   article.Description,
			Link:   article.URL,
			Source: s.config.Name,
		}
		if publishedAt, err := time.Parse(time.RFC3339, article.PublishedAt); err == nil {
			item.PublishedAt = publishedAt
		}

		items = append(items, item)

		if s.config.Settings.MaxItems > 0 && len(items) >= s.config.Settings.MaxItems {
			break
		}
	}

	return items, nil
}

func (s *APISource) buildURL() (string, error) {
	parsed, err := url.Parse(s.config.URL)
	if err != nil {
		return "", fmt.Errorf("invalid source URL: %w", err)
	}

	if s.config.APIToken != "" {
		query := parsed.Query()
		query.Set("api_token", s.config.APIToken)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}
