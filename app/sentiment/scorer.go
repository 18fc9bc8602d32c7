package sentiment

// Scorer rates text for directional sentiment. Scores are bounded to
// [-1, 1]: positive is bullish, negative is bearish.
type Scorer interface {
	Score(text string) float64
}
