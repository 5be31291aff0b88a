package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/starford/raido/pkg/dtc"
	"github.com/starford/raido/pkg/dtc/dtchttp"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// writeChain returns a chain both as a JSON body and on the
// Data-Tracker-Chain response header, so callers can forward the header
// as-is to the next actor.
func writeChain(w http.ResponseWriter, status int, chain dtc.Chain) {
	token, err := dtc.Encode(chain)
	if err != nil {
		slog.Error("encode chain failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.Header().Set(dtchttp.Header, token)
	writeJSON(w, status, ChainResponse{
		Token:  token,
		DataID: chain.DataID(),
		Length: chain.Len(),
	})
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}
