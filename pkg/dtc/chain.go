package dtc

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Chain is an ordered, append-only sequence of links describing a data
// item's journey. Chain values are immutable: Append returns a new, longer
// chain and never mutates the receiver, so a chain handed downstream can be
// re-verified byte for byte. Verification is a pure read and is safe to run
// concurrently; appends against the same value must be serialized by the
// caller, since two appends from one snapshot would claim the same index.
type Chain struct {
	links []Link
}

// NewGenesis mines the fixed-shape first link for a data item and returns
// the one-link chain that every later step extends.
func NewGenesis(ctx context.Context, pow PoW, dataID string) (Chain, error) {
	link, err := pow.Mine(ctx, genesisIdentifier(dataID))
	if err != nil {
		return Chain{}, err
	}
	return Chain{links: []Link{link}}, nil
}

// Append records that actorID took possession of the data now. It mines a
// link whose index and previous_hash follow the current last link and
// returns the extended chain. If the receiver satisfied the chain
// invariants, so does the result.
func (c Chain) Append(ctx context.Context, pow PoW, actorID string) (Chain, error) {
	return c.AppendAt(ctx, pow, uint64(time.Now().Unix()), actorID)
}

// AppendAt is Append with a caller-supplied possession timestamp, for actors
// that record when they received the data rather than when they got around
// to extending the chain.
func (c Chain) AppendAt(ctx context.Context, pow PoW, timestamp uint64, actorID string) (Chain, error) {
	if len(c.links) == 0 {
		return Chain{}, &ChainError{Reason: NoLinks}
	}
	last := c.links[len(c.links)-1]
	id := Identifier{
		DataID:       last.Identifier.DataID,
		Index:        last.Identifier.Index + 1,
		Timestamp:    timestamp,
		ActorID:      actorID,
		PreviousHash: last.Hash,
	}
	link, err := pow.Mine(ctx, id)
	if err != nil {
		return Chain{}, err
	}
	links := make([]Link, len(c.links), len(c.links)+1)
	copy(links, c.links)
	return Chain{links: append(links, link)}, nil
}

// Verify walks the whole chain and returns nil only if every invariant
// holds: a well-formed genesis link, contiguous indexes, previous_hash
// linkage, and a reproducible proof of work on every link. It short-circuits
// on the first violation with a ChainError naming the reason and the
// offending link. Verification is all or nothing; a caller must not act on
// a chain for which Verify returned an error.
func (c Chain) Verify(pow PoW) error {
	if len(c.links) == 0 {
		return &ChainError{Reason: NoLinks}
	}
	if !isGenesisShape(c.links[0].Identifier) {
		return &ChainError{Reason: BadGenesis, Index: 0}
	}
	for i, link := range c.links {
		if i > 0 {
			prev := c.links[i-1]
			if link.Identifier.Index != prev.Identifier.Index+1 {
				return &ChainError{Reason: IndexGap, Index: i}
			}
			if link.Identifier.PreviousHash != prev.Hash {
				return &ChainError{Reason: HashMismatch, Index: i}
			}
		}
		if err := pow.Verify(link); err != nil {
			var ce *ChainError
			if errors.As(err, &ce) {
				// Report the position in this chain, not the index the
				// (possibly tampered) link claims for itself.
				return &ChainError{Reason: ce.Reason, Index: i}
			}
			return err
		}
	}
	return nil
}

// Len returns the number of links in the chain.
func (c Chain) Len() int {
	return len(c.links)
}

// IsEmpty reports whether the chain has no links.
func (c Chain) IsEmpty() bool {
	return len(c.links) == 0
}

// Get returns the link at position i.
func (c Chain) Get(i int) (Link, bool) {
	if i < 0 || i >= len(c.links) {
		return Link{}, false
	}
	return c.links[i], true
}

// Last returns the most recent link.
func (c Chain) Last() (Link, bool) {
	if len(c.links) == 0 {
		return Link{}, false
	}
	return c.links[len(c.links)-1], true
}

// DataID returns the tracked data item's identifier, or "" for an empty
// chain.
func (c Chain) DataID() string {
	if len(c.links) == 0 {
		return ""
	}
	return c.links[0].Identifier.DataID
}

// Links returns a copy of the chain's links in provenance order.
func (c Chain) Links() []Link {
	out := make([]Link, len(c.links))
	copy(out, c.links)
	return out
}

// MarshalJSON encodes the chain as a JSON array of links, the structured
// text form carried inside transport tokens.
func (c Chain) MarshalJSON() ([]byte, error) {
	if c.links == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.links)
}

// UnmarshalJSON decodes a JSON array of links. It restores structure only;
// callers must still Verify before trusting the result.
func (c *Chain) UnmarshalJSON(data []byte) error {
	var links []Link
	if err := json.Unmarshal(data, &links); err != nil {
		return err
	}
	c.links = links
	return nil
}
