package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/raido/internal/testutil"
	"github.com/starford/raido/pkg/dtc"
)

func testService() *Service {
	return NewService(testutil.TestPoW(), "raido~test~service")
}

func TestMintAndExtend(t *testing.T) {
	svc := testService()

	chain, err := svc.Mint(context.Background(), "order~clothing~iStore~15150")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if chain.Len() != 1 {
		t.Fatalf("minted chain length = %d, want 1", chain.Len())
	}

	chain, err = svc.Extend(context.Background(), chain, "payment-validator")
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	last, _ := chain.Last()
	if last.Identifier.ActorID != "payment-validator" {
		t.Errorf("actor_id = %q", last.Identifier.ActorID)
	}
	if err := chain.Verify(svc.PoW()); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestExtendDefaultsToServiceActor(t *testing.T) {
	svc := testService()

	chain, err := svc.Mint(context.Background(), "purchaseId=12345")
	if err != nil {
		t.Fatal(err)
	}
	chain, err = svc.Extend(context.Background(), chain, "")
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	last, _ := chain.Last()
	if last.Identifier.ActorID != "raido~test~service" {
		t.Errorf("actor_id = %q, want service default", last.Identifier.ActorID)
	}
}

func TestExtendRejectsTamperedChain(t *testing.T) {
	svc := testService()

	chain := testutil.TestChain(t, svc.PoW(), 1)
	links := chain.Links()
	links[1].Identifier.ActorID = "tampered data"
	bad := testutil.ChainFromLinks(t, links)

	_, err := svc.Extend(context.Background(), bad, "payment-validator")
	var ce *dtc.ChainError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *dtc.ChainError", err)
	}
}

func TestInspectValid(t *testing.T) {
	svc := testService()
	chain := testutil.TestChain(t, svc.PoW(), 2)

	rep := svc.Inspect(chain)
	if !rep.Valid {
		t.Fatalf("report not valid: %+v", rep)
	}
	if rep.Length != 3 || len(rep.Links) != 3 {
		t.Errorf("length = %d, links = %d, want 3", rep.Length, len(rep.Links))
	}
	if rep.DataID != chain.DataID() {
		t.Errorf("data_id = %q", rep.DataID)
	}
}

func TestInspectInvalid(t *testing.T) {
	svc := testService()

	chain := testutil.TestChain(t, svc.PoW(), 2)
	links := chain.Links()
	links[1].Identifier.ActorID = "tampered data"
	bad := testutil.ChainFromLinks(t, links)

	rep := svc.Inspect(bad)
	if rep.Valid {
		t.Fatal("tampered chain reported valid")
	}
	if rep.Reason != string(dtc.HashMismatch) || rep.At != 1 {
		t.Errorf("reason = %q at %d", rep.Reason, rep.At)
	}
}
