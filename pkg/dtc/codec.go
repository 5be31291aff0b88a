package dtc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Encode serializes the chain into its transport token: standard base64 of
// the JSON link array. The token is a single ASCII string suitable for a
// text-oriented transport field such as an HTTP header.
func Encode(c Chain) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode tracker chain: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Decode parses a transport token back into a chain, failing with
// ErrMalformedToken before any verification is attempted. A successful
// decode says nothing about the chain's integrity; callers must always
// Verify afterwards.
func Decode(token string) (Chain, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Chain{}, fmt.Errorf("%w: not base64: %v", ErrMalformedToken, err)
	}
	var c Chain
	if err := json.Unmarshal(raw, &c); err != nil {
		return Chain{}, fmt.Errorf("%w: not a link array: %v", ErrMalformedToken, err)
	}
	return c, nil
}
