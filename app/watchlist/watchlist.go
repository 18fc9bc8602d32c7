package watchlist

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// validSymbol matches exchange ticker symbols like NVDA or BRK.B.
var validSymbol = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.]{0,5}$`)

// Watchlist is the mutable set of instrument symbols eligible for
// matching. Safe for concurrent add/remove/list while scans read it.
type Watchlist struct {
	mu      sync.RWMutex
	symbols map[string]*regexp.Regexp
}

func New(symbols []string) (*Watchlist, error) {
	w := &Watchlist{
		symbols: make(map[string]*regexp.Regexp),
	}

	for _, symbol := range symbols {
		if err := w.Add(symbol); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func (w *Watchlist) Add(symbol string) error {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	if !validSymbol.MatchString(normalized) {
		return fmt.Errorf("invalid symbol: %q", symbol)
	}

	pattern, err := compileWordPattern(normalized)
	if err != nil {
		return fmt.Errorf("failed to compile pattern for %q: %w", normalized, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.symbols[normalized] = pattern

	return nil
}

func (w *Watchlist) Remove(symbol string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.symbols[normalized]; !ok {
		return false
	}
	delete(w.symbols, normalized)
	return true
}

func (w *Watchlist) Contains(symbol string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))

	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.symbols[normalized]
	return ok
}

func (w *Watchlist) List() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	symbols := make([]string, 0, len(w.symbols))
	for symbol := range w.symbols {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func (w *Watchlist) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.symbols)
}

// snapshot returns a stable copy of the compiled patterns so a mutation
// mid-scan cannot corrupt iteration.
func (w *Watchlist) snapshot() map[string]*regexp.Regexp {
	w.mu.RLock()
	defer w.mu.RUnlock()

	patterns := make(map[string]*regexp.Regexp, len(w.symbols))
	for symbol, pattern := range w.symbols {
		patterns[symbol] = pattern
	}
	return patterns
}

// compileWordPattern builds a case-insensitive whole-word pattern, so a
// symbol that is a substring of a common word does not false-positive.
func compileWordPattern(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}
