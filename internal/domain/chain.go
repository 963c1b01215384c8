package domain

// Chain identifies a blockchain known to the portfolio classifier.
type Chain string

const (
	ChainOsmosis  Chain = "Osmosis"
	ChainEthereum Chain = "Ethereum"
	ChainArbitrum Chain = "Arbitrum"
	ChainZilliqa  Chain = "Zilliqa"
	ChainNeo      Chain = "Neo"
	ChainUnknown  Chain = "Unknown"
)

// knownChains is unexported to prevent external mutation.
var knownChains = map[string]Chain{
	"Osmosis":  ChainOsmosis,
	"Ethereum": ChainEthereum,
	"Arbitrum": ChainArbitrum,
	"Zilliqa":  ChainZilliqa,
	"Neo":      ChainNeo,
}

// ChainFromName classifies a blockchain name string into a Chain.
// Names outside the known set map to ChainUnknown, which is a reachable,
// named state rather than an implicit default.
func ChainFromName(name string) Chain {
	if c, ok := knownChains[name]; ok {
		return c
	}
	return ChainUnknown
}

// KnownChains returns all chains the classifier recognizes, in precedence
// table order.
func KnownChains() []Chain {
	return []Chain{ChainOsmosis, ChainEthereum, ChainArbitrum, ChainZilliqa, ChainNeo}
}

func (c Chain) String() string { return string(c) }
