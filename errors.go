package aesp

import "errors"

// Error kinds a caller matches against with errors.Is. Every fallible
// operation in this package returns one of these, most often wrapped via
// fmt.Errorf's %w verb, so callers should use errors.Is rather than ==.
var (
	// ErrInvalidKeySize means a key's byte length was not 16, 24, or 32.
	ErrInvalidKeySize = errors.New("aesp: invalid key size")

	// ErrInvalidCiphertext means the input was shorter than a mode's
	// minimum framing, or (ECB) not a multiple of the block size.
	ErrInvalidCiphertext = errors.New("aesp: invalid ciphertext")

	// ErrInvalidPadding means ECB decryption found a malformed PKCS#7
	// trailer.
	ErrInvalidPadding = errors.New("aesp: invalid padding")

	// ErrInvalidTag means a GCM tag failed constant-time verification.
	ErrInvalidTag = errors.New("aesp: invalid authentication tag")

	// ErrCounterOverflow means the requested operation would need more
	// than 2^32-1 keystream blocks under a single nonce.
	ErrCounterOverflow = errors.New("aesp: counter overflow")

	// ErrRandomSource means the configured random source failed to
	// produce a nonce or key.
	ErrRandomSource = errors.New("aesp: random source failed")
)
