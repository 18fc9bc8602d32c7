package watchlist

import "sort"

// Matcher resolves free text against the watch-list and the alias table.
type Matcher struct {
	watchlist *Watchlist
}

func NewMatcher(watchlist *Watchlist) *Matcher {
	return &Matcher{watchlist: watchlist}
}

// Match returns the duplicate-free set of watched symbols mentioned in
// the text, either literally or via a company-name alias. Only symbols
// currently on the watch-list are returned.
func (m *Matcher) Match(text string) []string {
	if text == "" {
		return nil
	}

	patterns := m.watchlist.snapshot()
	matched := make(map[string]bool)

	for symbol, pattern := range patterns {
		if pattern.MatchString(text) {
			matched[symbol] = true
		}
	}

	for _, alias := range compiledAliases {
		if matched[alias.symbol] {
			continue
		}
		if _, watched := patterns[alias.symbol]; !watched {
			continue
		}
		if alias.pattern.MatchString(text) {
			matched[alias.symbol] = true
		}
	}

	if len(matched) == 0 {
		return nil
	}

	symbols := make([]string, 0, len(matched))
	for symbol := range matched {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
