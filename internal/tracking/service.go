// Package tracking is the domain layer between the REST API and the chain
// core: it mints, extends, and inspects Data Tracker Chains on behalf of
// this deployment's actor identity.
package tracking

import (
	"context"
	"errors"
	"log/slog"

	"github.com/starford/raido/pkg/dtc"
)

// Service applies this deployment's proof-of-work parameters and actor
// identity to chain operations.
type Service struct {
	pow     dtc.PoW
	actorID string
}

// NewService creates a Service. actorID is recorded on links appended on
// behalf of this deployment when the caller does not name an actor.
func NewService(pow dtc.PoW, actorID string) *Service {
	return &Service{pow: pow, actorID: actorID}
}

// PoW returns the proof-of-work parameters the service mines and verifies
// with.
func (s *Service) PoW() dtc.PoW {
	return s.pow
}

// Mint starts a new chain for a data item.
func (s *Service) Mint(ctx context.Context, dataID string) (dtc.Chain, error) {
	slog.Debug("minting tracker chain", slog.String("data_id", dataID))
	return dtc.NewGenesis(ctx, s.pow, dataID)
}

// Extend verifies an inbound chain and appends a link for actorID (or the
// service's own actor when actorID is empty). The inbound chain is never
// mutated; an invalid chain is rejected, not repaired.
func (s *Service) Extend(ctx context.Context, chain dtc.Chain, actorID string) (dtc.Chain, error) {
	if actorID == "" {
		actorID = s.actorID
	}
	if err := chain.Verify(s.pow); err != nil {
		return dtc.Chain{}, err
	}
	slog.Debug("extending tracker chain",
		slog.String("data_id", chain.DataID()),
		slog.String("actor_id", actorID),
		slog.Int("length", chain.Len()))
	return chain.Append(ctx, s.pow, actorID)
}

// Report is the result of inspecting a chain.
type Report struct {
	Valid  bool       `json:"valid"`
	Reason string     `json:"reason,omitempty"`
	At     int        `json:"at,omitempty"`
	DataID string     `json:"data_id"`
	Length int        `json:"length"`
	Links  []dtc.Link `json:"links"`
}

// Inspect verifies a chain and describes what it found. Unlike Extend it
// does not reject invalid chains; it reports them.
func (s *Service) Inspect(chain dtc.Chain) Report {
	rep := Report{
		Valid:  true,
		DataID: chain.DataID(),
		Length: chain.Len(),
		Links:  chain.Links(),
	}
	if err := chain.Verify(s.pow); err != nil {
		rep.Valid = false
		var ce *dtc.ChainError
		if errors.As(err, &ce) {
			rep.Reason = string(ce.Reason)
			rep.At = ce.Index
		} else {
			rep.Reason = err.Error()
		}
	}
	return rep
}
