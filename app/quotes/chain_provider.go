package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

var _ Provider = (*ChainProvider)(nil)

// ChainProvider fetches an option chain over HTTP and selects the call
// contract with the strike closest to the underlying price (at the
// money).
type ChainProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

type chainResponse struct {
	Price decimal.Decimal `json:"price"`
	Calls []chainContract `json:"calls"`
}

type chainContract struct {
	Strike    decimal.Decimal `json:"strike"`
	LastPrice decimal.Decimal `json:"lastPrice"`
}

func NewChainProvider(baseURL, apiKey string, httpClient *http.Client, userAgent string, timeout time.Duration) *ChainProvider {
	return &ChainProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (p *ChainProvider) Lookup(ctx context.Context, symbol string) (Quote, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1/options/%s?apiKey=%s", p.baseURL, symbol, p.apiKey)
	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to fetch option chain: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to read response body: %w", err)
	}

	var chain chainResponse
	if err := json.Unmarshal(data, &chain); err != nil {
		return Quote{}, fmt.Errorf("failed to parse option chain: %w", err)
	}

	return selectATMCall(symbol, chain)
}

// selectATMCall picks the call whose strike is closest to the underlying
// price. Ties go to the first contract in chain order.
func selectATMCall(symbol string, chain chainResponse) (Quote, error) {
	if len(chain.Calls) == 0 {
		return Quote{}, fmt.Errorf("empty option chain for %s", symbol)
	}

	best := chain.Calls[0]
	bestDistance := best.Strike.Sub(chain.Price).Abs()

	for _, contract := range chain.Calls[1:] {
		distance := contract.Strike.Sub(chain.Price).Abs()
		if distance.LessThan(bestDistance) {
			best = contract
			bestDistance = distance
		}
	}

	return Quote{
		Symbol: symbol,
		Strike: best.Strike,
		Price:  best.LastPrice,
	}, nil
}
