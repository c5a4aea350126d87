// Package aesgcm provides field-level encryption of clinical text
// using AES-256-GCM with a random nonce per value.
//
// The stored form is base64(nonce || ciphertext), matching what the
// session ingestion path has always written. The key is derived from
// the configured secret by truncating or zero-padding to 32 bytes.
package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
)

// Ensure Cipher implements the interface.
var _ driven.TextCipher = (*Cipher)(nil)

const keySize = 32

// Cipher encrypts and decrypts text fields with AES-256-GCM.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a cipher from the configured secret.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.New("aesgcm: empty secret")
	}

	key := make([]byte, keySize)
	copy(key, secret)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt returns base64(nonce || ciphertext) for the plain text.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("aesgcm: generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. All failure modes (bad base64, truncated
// value, wrong key, tampered ciphertext) collapse into
// domain.ErrDecryptFailed so callers can skip the record uniformly.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("aesgcm: decode: %v: %w", err, domain.ErrDecryptFailed)
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("aesgcm: value shorter than nonce: %w", domain.ErrDecryptFailed)
	}

	plain, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("aesgcm: open: %v: %w", err, domain.ErrDecryptFailed)
	}
	return string(plain), nil
}
