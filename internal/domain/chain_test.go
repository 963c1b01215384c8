package domain

import "testing"

func TestChainFromName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Chain
	}{
		{"osmosis", "Osmosis", ChainOsmosis},
		{"ethereum", "Ethereum", ChainEthereum},
		{"arbitrum", "Arbitrum", ChainArbitrum},
		{"zilliqa", "Zilliqa", ChainZilliqa},
		{"neo", "Neo", ChainNeo},
		{"unknown chain", "Dogechain", ChainUnknown},
		{"empty", "", ChainUnknown},
		{"case sensitive", "ethereum", ChainUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChainFromName(tt.input); got != tt.want {
				t.Errorf("ChainFromName(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestKnownChainsExcludesUnknown(t *testing.T) {
	for _, c := range KnownChains() {
		if c == ChainUnknown {
			t.Fatalf("KnownChains() contains ChainUnknown")
		}
	}
	if len(KnownChains()) != 5 {
		t.Errorf("KnownChains() len = %d, want 5", len(KnownChains()))
	}
}
