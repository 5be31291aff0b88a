package dtc

import (
	"errors"
	"fmt"
)

var (
	// ErrMiningTimeout is returned when the nonce search exhausts its
	// attempt bound before satisfying the difficulty target. The append
	// attempt failed; the caller may retry with adjusted parameters.
	ErrMiningTimeout = errors.New("mining exceeded attempt bound")

	// ErrMalformedToken is returned when a transport token cannot be
	// decoded. Decoding is rejected outright; there is no partial recovery.
	ErrMalformedToken = errors.New("malformed tracker chain token")
)

// Reason classifies the first invariant violation found while verifying a
// chain.
type Reason string

const (
	// NoLinks: the chain is empty. An empty chain is invalid, not a
	// degenerate valid one.
	NoLinks Reason = "no_links"
	// BadGenesis: link 0 does not have the required genesis shape.
	BadGenesis Reason = "bad_genesis"
	// IndexGap: a link's index is not its predecessor's index + 1.
	IndexGap Reason = "index_gap"
	// HashMismatch: a link's previous_hash does not match its predecessor's
	// hash, or its stored hash is not reproducible from its identifier and
	// nonce.
	HashMismatch Reason = "hash_mismatch"
	// ProofOfWorkInvalid: the recomputed digest does not satisfy the
	// difficulty target.
	ProofOfWorkInvalid Reason = "proof_of_work_invalid"
)

// ChainError reports why a chain failed verification and the position of the
// offending link. A chain that produced a ChainError must be treated as
// untrustworthy in full; there is no valid prefix.
type ChainError struct {
	Reason Reason
	Index  int
}

func (e *ChainError) Error() string {
	if e.Reason == NoLinks {
		return "tracker chain has no links"
	}
	return fmt.Sprintf("tracker chain invalid at link %d: %s", e.Index, e.Reason)
}
