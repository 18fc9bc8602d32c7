package news

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// Registry builds Source instances from the config cache, so newly
// enabled or disabled sources take effect on the next scan.
type Registry struct {
	configCache *ConfigCache
	httpClient  *http.Client
	userAgent   string
	extractor   *BodyExtractor
}

func NewRegistry(configCache *ConfigCache, httpClient *http.Client, userAgent string, extractor *BodyExtractor) *Registry {
	return &Registry{
		configCache: configCache,
		httpClient:  httpClient,
		userAgent:   userAgent,
		extractor:   extractor,
	}
}

func (r *Registry) EnabledSources() []Source {
	configs := r.configCache.GetEnabledConfigs()

	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		config := configs[name]

		var source Source
		switch config.Type {
		case SourceTypeJSON:
			source = NewAPISource(config, r.httpClient, r.userAgent)
		default:
			source = NewRSSSource(config, r.httpClient, r.userAgent)
		}

		if config.Settings.ExtractBody && r.extractor != nil {
			source = &extractingSource{inner: source, extractor: r.extractor}
		}

		sources = append(sources, source)
	}

	return sources
}

// extractingSource fills in missing item bodies by fetching the linked
// article. Extraction failures are logged and leave the item as-is.
type extractingSource struct {
	inner     Source
	extractor *BodyExtractor
}

func (s *extractingSource) Name() string {
	return s.inner.Name()
}

func (s *extractingSource) Fetch(ctx context.Context) ([]Item, error) {
	items, err := s.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].Body != "" || items[i].Link == "" {
			continue
		}

		body, err := s.extractor.Run(ctx, items[i].Link)
		if err != nil {
			slog.Debug("Body extraction failed", "source", s.inner.Name(), "link", items[i].Link, "error", err)
			continue
		}
		items[i].Body = body
	}

	return items, nil
}

// NewDefaultHTTPClient returns the client shared by sources, providers,
// and the notification channel.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}
