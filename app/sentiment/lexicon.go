package sentiment

import (
	"math"
	"strings"
)

var _ Scorer = (*LexiconScorer)(nil)

// LexiconScorer is a weighted-wordlist scorer tuned for financial
// headlines. Simple negation handling: a negator directly before a
// scored word flips its sign.
type LexiconScorer struct {
	weights  map[string]float64
	negators map[string]bool
}

var defaultWeights = map[string]float64{
	// bullish
	"beats":        2.0,
	"beat":         1.5,
	"surges":       2.5,
	"surge":        2.5,
	"soars":        2.5,
	"soar":         2.5,
	"rallies":      2.0,
	"rally":        2.0,
	"jumps":        1.8,
	"jump":         1.5,
	"gains":        1.5,
	"gain":         1.2,
	"rises":        1.2,
	"rise":         1.0,
	"climbs":       1.2,
	"record":       1.2,
	"strong":       1.2,
	"growth":       1.2,
	"profit":       1.0,
	"upgrade":      1.8,
	"upgraded":     1.8,
	"outperform":   1.5,
	"bullish":      2.0,
	"breakthrough": 1.8,
	"approval":     1.5,
	"approved":     1.5,
	"wins":         1.5,
	"win":          1.2,
	"exceeds":      1.8,
	"tops":         1.5,

	// bearish
	"misses":        -2.0,
	"miss":          -1.5,
	"plunges":       -2.5,
	"plunge":        -2.5,
	"tumbles":       -2.2,
	"tumble":        -2.2,
	"sinks":         -2.0,
	"sink":          -2.0,
	"falls":         -1.5,
	"fall":          -1.2,
	"drops":         -1.5,
	"drop":          -1.2,
	"slides":        -1.5,
	"slumps":        -2.0,
	"slump":         -2.0,
	"crashes":       -2.8,
	"crash":         -2.8,
	"weak":          -1.2,
	"loss":          -1.5,
	"losses":        -1.5,
	"downgrade":     -1.8,
	"downgraded":    -1.8,
	"underperform":  -1.5,
	"bearish":       -2.0,
	"lawsuit":       -1.5,
	"recall":        -1.5,
	"investigation": -1.5,
	"fraud":         -2.5,
	"bankruptcy":    -2.8,
	"layoffs":       -1.8,
	"cuts":          -1.2,
	"warns":         -1.5,
	"warning":       -1.5,
	"delays":        -1.2,
	"halted":        -1.8,
}

var defaultNegators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"nor":     true,
	"without": true,
}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		weights:  defaultWeights,
		negators: defaultNegators,
	}
}

// Score sums matched word weights and squashes the total into [-1, 1].
// The normalization constant follows the usual lexicon-scorer shape:
// sum / sqrt(sum^2 + alpha).
func (s *LexiconScorer) Score(text string) float64 {
	const alpha = 15.0

	words := tokenize(text)

	var sum float64
	for i, word := range words {
		weight, ok := s.weights[word]
		if !ok {
			continue
		}
		if i > 0 && s.negators[words[i-1]] {
			weight = -weight
		}
		sum += weight
	}

	if sum == 0 {
		return 0
	}

	score := sum / math.Sqrt(sum*sum+alpha)
	return math.Max(-1, math.Min(1, score))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
