package dtchttp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/starford/raido/pkg/dtc"
)

var testPoW = dtc.PoW{Difficulty: 8, MaxAttempts: 1 << 20}

func testChain(t *testing.T) dtc.Chain {
	t.Helper()
	c, err := dtc.NewGenesis(context.Background(), testPoW, "order~clothing~iStore~15150")
	if err != nil {
		t.Fatalf("NewGenesis: %v", err)
	}
	c, err = c.AppendAt(context.Background(), testPoW, 1578071239, "notifier~billing~receipt~email")
	if err != nil {
		t.Fatalf("AppendAt: %v", err)
	}
	return c
}

// encodeLinks builds a token straight from the wire form, bypassing the
// chain type, so tests can ship tampered link arrays.
func encodeLinks(t *testing.T, links []dtc.Link) string {
	t.Helper()
	b, err := json.Marshal(links)
	if err != nil {
		t.Fatal(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

func TestHeaderRoundTrip(t *testing.T) {
	c := testChain(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := SetHeader(req.Header, c); err != nil {
		t.Fatalf("SetHeader: %v", err)
	}
	got, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest: %v", err)
	}
	if !reflect.DeepEqual(got.Links(), c.Links()) {
		t.Error("chain changed in header round trip")
	}
}

func TestFromRequestMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := FromRequest(req)
	if !errors.Is(err, ErrMissingHeader) {
		t.Errorf("err = %v, want ErrMissingHeader", err)
	}
}

func TestFromRequestMalformedToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "%%% not a token %%%")
	_, err := FromRequest(req)
	if !errors.Is(err, dtc.ErrMalformedToken) {
		t.Errorf("err = %v, want ErrMalformedToken", err)
	}
}

func enforcedHandler(t *testing.T, level ValidationLevel) (http.Handler, *bool) {
	t.Helper()
	sawChain := false
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawChain = ChainFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Enforcer(level, testPoW)(h), &sawChain
}

func doReq(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(Header, header)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestEnforcerNone(t *testing.T) {
	h, sawChain := enforcedHandler(t, ValidationNone)
	if w := doReq(h, ""); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if *sawChain {
		t.Error("ValidationNone should not decode the chain")
	}
}

func TestEnforcerLowRequiresHeader(t *testing.T) {
	h, _ := enforcedHandler(t, ValidationLow)
	if w := doReq(h, ""); w.Code != http.StatusBadRequest {
		t.Errorf("status without header = %d, want 400", w.Code)
	}
	if w := doReq(h, base64.StdEncoding.EncodeToString([]byte("{"))); w.Code != http.StatusBadRequest {
		t.Errorf("status with garbage = %d, want 400", w.Code)
	}
}

func TestEnforcerLowAcceptsUnverifiedChain(t *testing.T) {
	c := testChain(t)
	links := c.Links()
	links[1].Identifier.ActorID = "tampered data"

	h, sawChain := enforcedHandler(t, ValidationLow)
	if w := doReq(h, encodeLinks(t, links)); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (low does not verify)", w.Code)
	}
	if !*sawChain {
		t.Error("decoded chain missing from context")
	}
}

func TestEnforcerHigh(t *testing.T) {
	c := testChain(t)
	token, err := dtc.Encode(c)
	if err != nil {
		t.Fatal(err)
	}

	h, sawChain := enforcedHandler(t, ValidationHigh)
	if w := doReq(h, token); w.Code != http.StatusOK {
		t.Fatalf("status with valid chain = %d, want 200", w.Code)
	}
	if !*sawChain {
		t.Error("decoded chain missing from context")
	}

	links := c.Links()
	links[1].Identifier.ActorID = "tampered data"
	if w := doReq(h, encodeLinks(t, links)); w.Code != http.StatusBadRequest {
		t.Errorf("status with tampered chain = %d, want 400", w.Code)
	}
}
