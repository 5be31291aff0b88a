package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/starford/raido/internal/tracking"
	"github.com/starford/raido/pkg/dtc"
	"github.com/starford/raido/pkg/dtc/dtchttp"
)

// Handler holds API route handlers.
type Handler struct {
	svc *tracking.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *tracking.Service) *Handler {
	return &Handler{svc: svc}
}

// requestChain returns the chain the Enforcer stashed for this request,
// falling back to extracting it from the header when the route is not
// enforced.
func requestChain(r *http.Request) (dtc.Chain, error) {
	if chain, ok := dtchttp.ChainFromContext(r.Context()); ok {
		return chain, nil
	}
	return dtchttp.FromRequest(r)
}

// MintChain handles POST /api/chains. It mines a genesis link for the given
// data item and returns the one-link chain as a transport token.
func (h *Handler) MintChain(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req MintChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	chain, err := h.svc.Mint(r.Context(), req.DataID)
	if err != nil {
		respondChainErr(w, "mint chain failed", err)
		return
	}
	writeChain(w, http.StatusCreated, chain)
}

// AppendChain handles POST /api/chains/append. The inbound chain travels in
// the Data-Tracker-Chain header; the extended chain is returned the same
// way.
func (h *Handler) AppendChain(w http.ResponseWriter, r *http.Request) {
	chain, err := requestChain(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req AppendChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	extended, err := h.svc.Extend(r.Context(), chain, req.ActorID)
	if err != nil {
		respondChainErr(w, "append chain failed", err)
		return
	}
	writeChain(w, http.StatusOK, extended)
}

// InspectChain handles GET /api/chains/inspect. It decodes the header chain
// and returns a verification report; an invalid chain is reported, not
// rejected.
func (h *Handler) InspectChain(w http.ResponseWriter, r *http.Request) {
	chain, err := requestChain(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Inspect(chain))
}

// respondChainErr maps domain errors onto status codes: invalid chains are
// the caller's fault, a mining timeout means this deployment's difficulty
// is set beyond its attempt budget.
func respondChainErr(w http.ResponseWriter, msg string, err error) {
	var ce *dtc.ChainError
	switch {
	case errors.As(err, &ce):
		writeJSON(w, http.StatusBadRequest, errorBody(ce.Error()))
	case errors.Is(err, dtc.ErrMiningTimeout):
		slog.Error(msg, slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, errorBody("mining timeout"))
	default:
		slog.Error(msg, slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
