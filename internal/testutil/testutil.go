// Package testutil provides shared test helpers for building miners and
// tracker chains.
package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/starford/raido/pkg/dtc"
)

// TestPoW returns proof-of-work parameters cheap enough for tests while
// still exercising the real nonce search.
func TestPoW() dtc.PoW {
	return dtc.PoW{Difficulty: 8, MaxAttempts: 1 << 20}
}

// TestChain mines a genesis chain for a fixed data item and appends the
// given number of steps with deterministic timestamps.
func TestChain(t *testing.T, pow dtc.PoW, steps int) dtc.Chain {
	t.Helper()
	c, err := dtc.NewGenesis(context.Background(), pow, "order~clothing~iStore~15150")
	if err != nil {
		t.Fatalf("NewGenesis: %v", err)
	}
	for i := 0; i < steps; i++ {
		c, err = c.AppendAt(context.Background(), pow, uint64(1578071239+i), "notifier~billing~receipt~email")
		if err != nil {
			t.Fatalf("AppendAt step %d: %v", i, err)
		}
	}
	return c
}

// ChainFromLinks rebuilds a chain from raw links through the wire form, so
// tests can assemble tampered or malformed chains.
func ChainFromLinks(t *testing.T, links []dtc.Link) dtc.Chain {
	t.Helper()
	b, err := json.Marshal(links)
	if err != nil {
		t.Fatal(err)
	}
	var c dtc.Chain
	if err := json.Unmarshal(b, &c); err != nil {
		t.Fatal(err)
	}
	return c
}
