package quotes

import (
	"context"
	"fmt"
	"log/slog"
)

var _ Provider = (*FallbackProvider)(nil)

// FallbackProvider tries a primary provider and falls back to a
// secondary one when the primary fails.
type FallbackProvider struct {
	primary   Provider
	secondary Provider
}

func NewFallbackProvider(primary, secondary Provider) *FallbackProvider {
	return &FallbackProvider{
		primary:   primary,
		secondary: secondary,
	}
}

func (p *FallbackProvider) Lookup(ctx context.Context, symbol string) (Quote, error) {
	quote, primaryErr := p.primary.Lookup(ctx, symbol)
	if primaryErr == nil {
		return quote, nil
	}

	slog.Warn("Primary quote provider failed, trying fallback", "symbol", symbol, "error", primaryErr)

	quote, secondaryErr := p.secondary.Lookup(ctx, symbol)
	if secondaryErr != nil {
		return Quote{}, fmt.Errorf("all quote providers failed for %s: primary: %v, fallback: %w", symbol, primaryErr, secondaryErr)
	}

	return quote, nil
}
