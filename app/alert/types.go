package alert

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionBullish Direction = "Bullish"
	DirectionBearish Direction = "Bearish"
)

// DirectionForScore maps sentiment sign to trade direction.
func DirectionForScore(score float64) Direction {
	if score < 0 {
		return DirectionBearish
	}
	return DirectionBullish
}

// Record is a fully assembled alert, created once per matched
// (item, symbol) pair and never mutated.
type Record struct {
	ID        string
	Symbol    string
	Headline  string
	Source    string
	Score     float64
	Direction Direction
	Strike    decimal.Decimal
	Price     decimal.Decimal
	CreatedAt time.Time
}

func NewRecord(symbol, headline, source string, score float64, strike, price decimal.Decimal) Record {
	return Record{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Headline:  headline,
		Source:    source,
		Score:     score,
		Direction: DirectionForScore(score),
		Strike:    strike,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}
}
