package driven

// TextCipher encrypts and decrypts clinical text fields at rest.
//
// Decrypt failures on a single record are expected operational noise
// (key rotation, legacy plaintext rows); callers skip the affected
// record rather than aborting the whole operation.
type TextCipher interface {
	// Encrypt returns the encrypted, transport-safe form of plain text.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. Returns domain.ErrDecryptFailed
	// (wrapped) when the stored value cannot be decrypted.
	Decrypt(ciphertext string) (string, error)
}
