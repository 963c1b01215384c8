package balance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchBalances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"blockchain": "Ethereum", "currency": "ETH", "amount": "5"},
			{"blockchain": "Osmosis", "currency": "OSMO", "amount": "120.5"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, time.Millisecond)
	balances, err := client.FetchBalances(context.Background())
	if err != nil {
		t.Fatalf("FetchBalances error: %v", err)
	}

	if len(balances) != 2 {
		t.Fatalf("balances = %d, want 2", len(balances))
	}
	if balances[0].Blockchain != "Ethereum" || balances[0].Amount != "5" {
		t.Errorf("first balance = %+v", balances[0])
	}
}

func TestFetchBalancesRetryExhausted(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 1, time.Millisecond)
	if _, err := client.FetchBalances(context.Background()); err == nil {
		t.Fatal("expected error after exhausting retries, got nil")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
