package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/tracking"
	"github.com/starford/raido/pkg/dtc/dtchttp"
)

// NewRouter creates a chi router with all API routes mounted.
// enforcement controls how strictly inbound Data-Tracker-Chain headers are
// checked on routes that consume them; authEnabled controls whether Bearer
// token auth is enforced.
func NewRouter(svc *tracking.Service, enforcement dtchttp.ValidationLevel, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Mint a fresh chain; no inbound chain expected.
	r.Post("/chains", h.MintChain)

	// Append runs at the configured enforcement level.
	r.With(dtchttp.Enforcer(enforcement, svc.PoW())).
		Post("/chains/append", h.AppendChain)

	// Inspect only needs a decodable chain; it reports invalid ones
	// instead of rejecting them.
	r.With(dtchttp.Enforcer(dtchttp.ValidationLow, svc.PoW())).
		Get("/chains/inspect", h.InspectChain)

	return r
}
