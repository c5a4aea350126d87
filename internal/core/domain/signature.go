package domain

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SignatureHeader is the HTTP header carrying the webhook signature.
const SignatureHeader = "X-HopeQure-Signature"

// CanonicalJSON serialises the envelope into the exact byte form that
// is signed and transmitted: object keys sorted lexicographically at
// every nesting level, no insignificant whitespace, no HTML escaping.
//
// Two envelopes with the same keys and values always canonicalise to
// identical bytes regardless of how their payload maps were built.
func CanonicalJSON(env Envelope) ([]byte, error) {
	// encoding/json writes map keys in sorted order; flattening the
	// envelope into a map gives sorted keys at the top level too.
	m := map[string]any{
		"event":     env.Event,
		"timestamp": env.Timestamp,
		"data":      env.Data,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("canonicalise envelope: %w", err)
	}

	// Encode appends a trailing newline that is not part of the
	// canonical form.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Sign computes the lowercase hex HMAC-SHA256 of the envelope's
// canonical JSON under the subscriber's secret.
//
// Sign is a pure function: identical (secret, envelope) pairs always
// yield identical signatures.
func Sign(secret string, env Envelope) (string, error) {
	body, err := CanonicalJSON(env)
	if err != nil {
		return "", err
	}
	return SignBytes(secret, body), nil
}

// SignBytes computes the lowercase hex HMAC-SHA256 of raw body bytes.
// Receivers use this over the body exactly as received.
func SignBytes(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the HMAC over the raw received body and
// compares it against the received signature in constant time.
func VerifySignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := SignBytes(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
