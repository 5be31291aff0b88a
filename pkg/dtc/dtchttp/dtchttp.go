// Package dtchttp carries Data Tracker Chains across HTTP boundaries: a
// header convention, a request extractor, and enforcement middleware that
// composes with any router speaking func(http.Handler) http.Handler.
package dtchttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/starford/raido/pkg/dtc"
)

// Header is the request header that carries the encoded tracker chain.
const Header = "Data-Tracker-Chain"

// ErrMissingHeader is returned when a request carries no tracker chain.
var ErrMissingHeader = errors.New("missing Data-Tracker-Chain header")

// ValidationLevel controls how much of an inbound chain the Enforcer checks
// before letting a request through.
type ValidationLevel int

const (
	// ValidationNone passes every request through untouched.
	ValidationNone ValidationLevel = iota
	// ValidationLow requires the header to be present and decodable.
	ValidationLow
	// ValidationHigh additionally requires the decoded chain to verify.
	ValidationHigh
)

// FromRequest extracts and decodes the tracker chain from the request
// header. Decoding succeeding does not imply the chain is valid; callers
// must still verify it.
func FromRequest(r *http.Request) (dtc.Chain, error) {
	token := r.Header.Get(Header)
	if token == "" {
		return dtc.Chain{}, ErrMissingHeader
	}
	return dtc.Decode(token)
}

// SetHeader encodes the chain into h, replacing any previous value.
func SetHeader(h http.Header, c dtc.Chain) error {
	token, err := dtc.Encode(c)
	if err != nil {
		return err
	}
	h.Set(Header, token)
	return nil
}

type chainCtxKey struct{}

// ChainFromContext returns the chain the Enforcer decoded for this request.
func ChainFromContext(ctx context.Context) (dtc.Chain, bool) {
	c, ok := ctx.Value(chainCtxKey{}).(dtc.Chain)
	return c, ok
}

// Enforcer returns middleware that rejects requests whose tracker chain
// does not meet the given validation level, with 400 Bad Request. At
// ValidationLow and above the decoded chain is stashed in the request
// context for handlers to pick up via ChainFromContext.
func Enforcer(level ValidationLevel, pow dtc.PoW) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if level == ValidationNone {
				next.ServeHTTP(w, r)
				return
			}
			chain, err := FromRequest(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if level >= ValidationHigh {
				if err := chain.Verify(pow); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
			}
			ctx := context.WithValue(r.Context(), chainCtxKey{}, chain)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
