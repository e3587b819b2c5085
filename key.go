package aesp

import (
	"fmt"

	"github.com/tobygrice/aesp/internal/consts"
)

// Key is an immutable AES key: a byte buffer of exactly 16, 24, or 32
// bytes and its declared size in bits (128, 192, or 256). It carries no
// interior mutability and is never hashed or derived — spec.md lists
// key-wrapping/KDF modes as an explicit non-goal, so the bytes a caller
// hands in (or that are sampled from the random source) are the bytes the
// key schedule consumes.
type Key struct {
	bytes []byte
	bits  int
}

// NewKey copies b (which must be exactly 16, 24, or 32 bytes) into a new
// Key.
func NewKey(b []byte) (*Key, error) {
	switch len(b) {
	case consts.KeySize128, consts.KeySize192, consts.KeySize256:
	default:
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(b))
	}

	buf := make([]byte, len(b))
	copy(buf, b)
	return &Key{bytes: buf, bits: len(b) * 8}, nil
}

// NewRandomKey samples a fresh key of the given bit size (128, 192, or
// 256) from src. Passing a nil src uses crypto/rand.
func NewRandomKey(bits int, src RandomSource) (*Key, error) {
	var size int
	switch bits {
	case 128:
		size = consts.KeySize128
	case 192:
		size = consts.KeySize192
	case 256:
		size = consts.KeySize256
	default:
		return nil, fmt.Errorf("%w: unsupported bit size %d", ErrInvalidKeySize, bits)
	}

	buf := make([]byte, size)
	if err := fillRandom(src, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	return &Key{bytes: buf, bits: bits}, nil
}

// NewRandomKey128, NewRandomKey192, and NewRandomKey256 sample a fresh key
// of the named size using crypto/rand.
func NewRandomKey128() (*Key, error) { return NewRandomKey(128, nil) }
func NewRandomKey192() (*Key, error) { return NewRandomKey(192, nil) }
func NewRandomKey256() (*Key, error) { return NewRandomKey(256, nil) }

// Bytes returns a copy of the key's raw bytes.
func (k *Key) Bytes() []byte {
	out := make([]byte, len(k.bytes))
	copy(out, k.bytes)
	return out
}

// Bits returns the key's declared size: 128, 192, or 256.
func (k *Key) Bits() int {
	return k.bits
}
