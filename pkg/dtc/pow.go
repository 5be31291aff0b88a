package dtc

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/gowebpki/jcs"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultDifficulty is used when PoW.Difficulty is zero. Expected cost
	// is about 2^12 digests per link.
	DefaultDifficulty = 12
	// DefaultMaxAttempts bounds the nonce search when PoW.MaxAttempts is
	// zero, so a pathological difficulty setting surfaces ErrMiningTimeout
	// instead of looping unboundedly.
	DefaultMaxAttempts = 1 << 26
)

// checkInterval is how often a mining loop polls its context.
const checkInterval = 1024

// PoW holds the proof-of-work parameters shared by miner and verifier. They
// are deployment configuration and are never embedded in chains or tokens;
// both sides of an exchange must agree on them out of band.
//
// The predicate: SHA-256 over the RFC 8785 canonical JSON of the identifier,
// a ':' separator, and the decimal nonce. The digest, read as a big-endian
// unsigned integer, must be below 2^(256-Difficulty). A link's hash is that
// digest's decimal string.
type PoW struct {
	// Difficulty is the required number of leading zero bits in the digest.
	// Zero selects DefaultDifficulty.
	Difficulty uint
	// MaxAttempts caps the nonce search. Zero selects DefaultMaxAttempts.
	MaxAttempts uint64
	// Workers sets the number of strided nonce-search goroutines. Values
	// below 2 select the sequential search, which is deterministic: the
	// same identifier always yields the same (nonce, hash) pair.
	Workers int
}

func (p PoW) difficulty() uint {
	switch {
	case p.Difficulty == 0:
		return DefaultDifficulty
	case p.Difficulty > 256:
		// SHA-256 digests have 256 bits; anything beyond is unsatisfiable
		// anyway and would underflow the target shift.
		return 256
	default:
		return p.Difficulty
	}
}

func (p PoW) maxAttempts() uint64 {
	if p.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

// target returns the exclusive upper bound the digest must stay below.
func (p PoW) target() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), 256-p.difficulty())
}

// digest computes the candidate hash for an identifier and nonce.
func (p PoW) digest(id Identifier, nonce uint64) (*big.Int, error) {
	raw, err := json.Marshal(id)
	if err != nil {
		return nil, fmt.Errorf("marshal identifier: %w", err)
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize identifier: %w", err)
	}
	h := sha256.New()
	h.Write(canon)
	h.Write([]byte{':'})
	h.Write([]byte(strconv.FormatUint(nonce, 10)))
	return new(big.Int).SetBytes(h.Sum(nil)), nil
}

// Mine searches for a nonce whose digest over id satisfies the difficulty
// target and returns the resulting link. The search starts at nonce 0 and is
// bounded by MaxAttempts, returning ErrMiningTimeout when exhausted. With
// Workers > 1 the nonce space is sharded across goroutines and the first
// shard to find a satisfying nonce wins; the others are cancelled on a
// best-effort basis, which is sound because any valid nonce is acceptable.
func (p PoW) Mine(ctx context.Context, id Identifier) (Link, error) {
	workers := p.Workers
	if workers < 2 {
		return p.mine(ctx, id, 0, 1, p.maxAttempts())
	}

	errFound := errors.New("nonce found")
	found := make(chan Link, workers)
	share := p.maxAttempts()/uint64(workers) + 1

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := uint64(w)
		g.Go(func() error {
			link, err := p.mine(gctx, id, start, uint64(workers), share)
			switch {
			case err == nil:
				found <- link
				// Returning an error cancels the sibling shards.
				return errFound
			case errors.Is(err, ErrMiningTimeout), errors.Is(err, context.Canceled):
				return nil
			default:
				return err
			}
		})
	}

	err := g.Wait()
	select {
	case link := <-found:
		return link, nil
	default:
	}
	if err != nil && !errors.Is(err, errFound) {
		return Link{}, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Link{}, ctxErr
	}
	return Link{}, ErrMiningTimeout
}

func (p PoW) mine(ctx context.Context, id Identifier, start, stride, attempts uint64) (Link, error) {
	target := p.target()
	nonce := start
	for i := uint64(0); i < attempts; i++ {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Link{}, err
			}
		}
		d, err := p.digest(id, nonce)
		if err != nil {
			return Link{}, err
		}
		if d.Cmp(target) < 0 {
			return Link{Identifier: id, Hash: d.String(), Nonce: nonce}, nil
		}
		nonce += stride
	}
	return Link{}, ErrMiningTimeout
}

// Verify recomputes the link's digest from its identifier and nonce alone,
// never trusting the stored hash as the source of truth. It returns a
// ChainError with reason HashMismatch when the stored hash is not
// reproducible, or ProofOfWorkInvalid when the recomputed digest does not
// satisfy the difficulty target.
func (p PoW) Verify(l Link) error {
	d, err := p.digest(l.Identifier, l.Nonce)
	if err != nil {
		return err
	}
	if d.String() != l.Hash {
		return &ChainError{Reason: HashMismatch, Index: int(l.Identifier.Index)}
	}
	if d.Cmp(p.target()) >= 0 {
		return &ChainError{Reason: ProofOfWorkInvalid, Index: int(l.Identifier.Index)}
	}
	return nil
}
