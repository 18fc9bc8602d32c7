package sentiment

import "testing"

func TestLexiconScorer_Bullish(t *testing.T) {
	scorer := NewLexiconScorer()

	score := scorer.Score("NVDA beats earnings, surges")
	if score <= 0.5 {
		t.Errorf("Expected strongly positive score, got %.2f", score)
	}
}

func TestLexiconScorer_Bearish(t *testing.T) {
	scorer := NewLexiconScorer()

	score := scorer.Score("TSLA plunges after earnings miss and downgrade")
	if score >= -0.5 {
		t.Errorf("Expected strongly negative score, got %.2f", score)
	}
}

func TestLexiconScorer_Neutral(t *testing.T) {
	scorer := NewLexiconScorer()

	score := scorer.Score("Apple announces annual developer conference date")
	if score != 0 {
		t.Errorf("Expected zero score for neutral headline, got %.2f", score)
	}
}

func TestLexiconScorer_Negation(t *testing.T) {
	scorer := NewLexiconScorer()

	positive := scorer.Score("Company posts strong growth")
	negated := scorer.Score("Company posts no growth")

	if positive <= 0 {
		t.Errorf("Expected positive score, got %.2f", positive)
	}
	if negated >= 0 {
		t.Errorf("Expected negation to flip score below zero, got %.2f", negated)
	}
}

func TestLexiconScorer_Bounded(t *testing.T) {
	scorer := NewLexiconScorer()

	score := scorer.Score("surges soars rallies jumps gains record strong growth profit upgrade bullish wins exceeds tops")
	if score > 1 || score < -1 {
		t.Errorf("Score out of bounds: %.2f", score)
	}

	if got := scorer.Score(""); got != 0 {
		t.Errorf("Expected zero score for empty text, got %.2f", got)
	}
}
