package quotes

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnavailable indicates no quote could be produced right now. The
// condition is recoverable: callers retry on the next occurrence.
var ErrUnavailable = errors.New("quote unavailable")

// Quote is an at-the-money option quote for a watched instrument.
type Quote struct {
	Symbol    string
	Strike    decimal.Decimal
	Price     decimal.Decimal
	FetchedAt time.Time
}

// Provider looks up a fresh quote from an external source. Used only on
// cache miss or stale entry.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (Quote, error)
}
