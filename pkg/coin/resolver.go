// Package coin maps free-text coin queries to canonical CoinGecko ids.
package coin

import (
	"strings"

	"github.com/StudioSol/set"
	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/samber/lo"
)

type alias struct {
	key string
	id  core.CoinID
}

// aliases is ordered so KnownIDs is stable.
var aliases = []alias{
	{"BTC", "bitcoin"},
	{"BITCOIN", "bitcoin"},
	{"ETH", "ethereum"},
	{"ETHEREUM", "ethereum"},
	{"DOGE", "dogecoin"},
	{"DOGECOIN", "dogecoin"},
	{"BNB", "binancecoin"},
	{"SOL", "solana"},
	{"XRP", "ripple"},
	{"ADA", "cardano"},
	{"DOT", "polkadot"},
	{"MATIC", "matic-network"},
	{"LTC", "litecoin"},
	{"BCH", "bitcoin-cash"},
}

var (
	byKey = lo.SliceToMap(aliases, func(a alias) (string, core.CoinID) {
		return a.key, a.id
	})
	canonical = lo.SliceToMap(aliases, func(a alias) (core.CoinID, struct{}) {
		return a.id, struct{}{}
	})
)

// TopCoins is the fixed, ordered list rendered by the top listing.
var TopCoins = []core.CoinID{"bitcoin", "ethereum", "binancecoin", "solana", "dogecoin"}

// Resolve normalizes a user query into a CoinID. It returns false only for
// empty or whitespace-only input. Unknown names fall back to a lowercase,
// hyphenated guess that is never checked against the upstream API.
func Resolve(query string) (core.CoinID, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	if _, ok := canonical[core.CoinID(q)]; ok {
		return core.CoinID(q), true
	}

	if id, ok := byKey[strings.ToUpper(q)]; ok {
		return id, true
	}

	return core.CoinID(strings.ReplaceAll(q, " ", "-")), true
}

// KnownIDs returns the canonical ids of the alias table, deduplicated, in
// table order.
func KnownIDs() []core.CoinID {
	ids := set.NewLinkedHashSetString()
	for _, a := range aliases {
		ids.Add(string(a.id))
	}

	var out []core.CoinID
	for id := range ids.Iter() {
		out = append(out, core.CoinID(id))
	}
	return out
}
