// Package consts defines the constant sizes shared by every layer of the
// AES engine: block size, key sizes, and the framing sizes used by the
// counter-based modes.
package consts

import "fmt"

const (
	// BlockSize is the size in bytes of one AES block and of the AES state.
	BlockSize = 16

	// WordSize is the size in bytes of one key-schedule word.
	WordSize = 4

	// NonceSize is the size in bytes of the CTR/GCM nonce.
	NonceSize = 12

	// CounterSize is the size in bytes of the big-endian block counter
	// that follows the nonce inside a counter block.
	CounterSize = BlockSize - NonceSize

	// TagSize is the size in bytes of a GCM authentication tag.
	TagSize = 16

	// MaxCounterBlocks is the largest number of keystream blocks a single
	// CTR/GCM call may request under one nonce: a 32-bit counter starting
	// at 1 can reach 2^32-1 before wrapping.
	MaxCounterBlocks = 1<<32 - 1
)

// KeySize128, KeySize192 and KeySize256 are the only key byte-lengths this
// engine accepts, per FIPS-197.
const (
	KeySize128 = 16
	KeySize192 = 24
	KeySize256 = 32
)

// Nk returns the number of 32-bit words in a key of the given byte length,
// and Nr returns the number of AES rounds for that key. Nr returns an
// error for any length other than the three valid key sizes; Nk does not
// check its input.
func Nk(keySize int) int {
	return keySize / WordSize
}

func Nr(keySize int) (int, error) {
	switch keySize {
	case KeySize128:
		return 10, nil
	case KeySize192:
		return 12, nil
	case KeySize256:
		return 14, nil
	default:
		return 0, fmt.Errorf("consts: invalid key size %d", keySize)
	}
}

// ExpandedWords returns the number of 32-bit words produced by the key
// schedule for the given key size: 4*(Nr+1).
func ExpandedWords(keySize int) (int, error) {
	nr, err := Nr(keySize)
	if err != nil {
		return 0, err
	}
	return WordSize * (nr + 1), nil
}
