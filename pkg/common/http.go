package common

import (
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
)

// JsonHandler wraps a handler that answers with a JSON body, taking care of
// the OPTIONS preflight and the session cookie. Handler errors are logged,
// never propagated to the client beyond the status already written.
func JsonHandler(fn func(w http.ResponseWriter, r *http.Request, sessionId string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(w, r)
		w.Header().Set("Content-Type", "application/json")
		if err := fn(w, r, sessionId); err != nil {
			slog.Error("request handler failed", "path", r.URL.Path, "err", err)
		}
	}
}

// WriteJson encodes the payload with sonic on the hot path.
func WriteJson(w http.ResponseWriter, status int, payload any) error {
	data, err := sonic.Marshal(payload)
	if err != nil {
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return err
	}
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.WriteHeader(http.StatusAccepted)
}
