// Package receiver implements the inbound webhook verification
// endpoint. It is the counterpart of the outbound dispatcher: a
// subscriber-side handler that recomputes the HMAC signature over the
// raw request body and rejects anything that does not verify.
package receiver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/logger"
)

// maxBodyBytes bounds an inbound notification body.
const maxBodyBytes = 1 << 20

// Handler verifies inbound webhook notifications.
//
// Verification recomputes HMAC-SHA256 over the exact raw body bytes
// with the shared secret and compares in constant time against the
// signature header. The body is never parsed before it verifies.
type Handler struct {
	secret string

	// OnEnvelope, when set, is called with each verified envelope.
	OnEnvelope func(env domain.Envelope)
}

// NewHandler creates a webhook receiver handler with the given shared
// secret.
func NewHandler(secret string) *Handler {
	return &Handler{secret: secret}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	signature := r.Header.Get(domain.SignatureHeader)
	if signature == "" || !domain.VerifySignature(h.secret, body, signature) {
		logger.Debug("Rejected notification: bad or missing signature")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid signature"})
		return
	}

	if h.OnEnvelope != nil {
		var env domain.Envelope
		if err := json.Unmarshal(body, &env); err == nil {
			h.OnEnvelope(env)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
