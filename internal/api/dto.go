package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/tracking"
)

// MintChainRequest is the request body for starting a new tracker chain.
type MintChainRequest struct {
	DataID string `json:"data_id" example:"order~clothing~iStore~15150"`
}

// Validate validates the mint request.
func (r MintChainRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DataID, validation.Required, validation.Length(1, 512)),
	)
}

// AppendChainRequest is the optional request body for appending a step. An
// empty or absent actor_id records the step under the service's own actor
// identity.
type AppendChainRequest struct {
	ActorID string `json:"actor_id" example:"notifier~billing~receipt~email"`
}

// Validate validates the append request.
func (r AppendChainRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ActorID, validation.Length(0, 512)),
	)
}

// ChainResponse carries a chain back to the caller. The same token is also
// set on the Data-Tracker-Chain response header.
type ChainResponse struct {
	Token  string `json:"token"`
	DataID string `json:"data_id"`
	Length int    `json:"length"`
}

// InspectResponse is the verification report for an inbound chain (aliased
// from the domain layer).
type InspectResponse = tracking.Report
