package watchlist

import "regexp"

// defaultAliases maps company names to ticker symbols for the liquid
// tickers the bot ships with. Checked the same way as literal symbols.
var defaultAliases = map[string]string{
	"Apple":     "AAPL",
	"Tesla":     "TSLA",
	"Microsoft": "MSFT",
	"Amazon":    "AMZN",
	"Nvidia":    "NVDA",
	"Google":    "GOOG",
	"Alphabet":  "GOOG",
	"Meta":      "META",
	"Facebook":  "META",
	"Netflix":   "NFLX",
	"Intel":     "INTC",
	"AMD":       "AMD",
	"Boeing":    "BA",
	"Disney":    "DIS",
	"Nike":      "NKE",
	"Starbucks": "SBUX",
	"PayPal":    "PYPL",
	"Coinbase":  "COIN",
	"Palantir":  "PLTR",
}

type aliasPattern struct {
	symbol  string
	pattern *regexp.Regexp
}

// compiledAliases is built once at init; the alias table is static.
var compiledAliases []aliasPattern

func init() {
	for alias, symbol := range defaultAliases {
		pattern, err := compileWordPattern(alias)
		if err != nil {
			continue
		}
		compiledAliases = append(compiledAliases, aliasPattern{symbol: symbol, pattern: pattern})
	}
}
