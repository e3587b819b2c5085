package aesp

import (
	"fmt"

	"github.com/tobygrice/aesp/internal/consts"
	"github.com/tobygrice/aesp/internal/counter"
	"github.com/tobygrice/aesp/internal/galois"
	"github.com/tobygrice/aesp/internal/parallel"
)

// coreCTR XORs data against the keystream produced by encrypting
// successive counter blocks nonce||big_endian(start), nonce||big_endian(start+1), ...
// It is shared by plain CTR (start=1) and GCM's keystream phase
// (start=2, since counter 1 forms J0, which gmac in gcm.go encrypts
// directly to mask the GHASH output).
func (c *Cipher) coreCTR(data, nonce []byte, start uint32) ([]byte, error) {
	if len(nonce) != consts.NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes", ErrInvalidCiphertext, consts.NonceSize)
	}
	if len(data) == 0 {
		return []byte{}, nil
	}

	nblocks := counter.NumBlocks(len(data))
	out := make([]byte, len(data))

	err := parallel.Run(nblocks, 0, func(i uint64) error {
		ctrBlock, err := counter.Block(nonce, start, i)
		if err != nil {
			return fmt.Errorf("%w", ErrCounterOverflow)
		}

		var src, ks [consts.BlockSize]byte
		copy(src[:], ctrBlock)
		c.encryptBlock(&ks, &src)

		off := int(i) * consts.BlockSize
		end := off + consts.BlockSize
		if end > len(data) {
			end = len(data)
		}
		galois.XorBlocks(out[off:end], data[off:end], ks[:end-off])
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// EncryptCTR samples a fresh 12-byte nonce, encrypts plainText against the
// keystream starting at counter value 1, and returns nonce || ciphertext.
//
// The counter is a 32-bit number: a single call can therefore encrypt up
// to 2^32-1 blocks (roughly 64 GiB) under one nonce before it would need
// to wrap. Longer inputs must be split across multiple nonces.
func (c *Cipher) EncryptCTR(plainText []byte) ([]byte, error) {
	nonce := make([]byte, consts.NonceSize)
	if err := fillRandom(nil, nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	cipherText, err := c.coreCTR(plainText, nonce, 1)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, consts.NonceSize+len(cipherText))
	out = append(out, nonce...)
	out = append(out, cipherText...)
	return out, nil
}

// DecryptCTR reads the 12-byte nonce prefix and decrypts the remainder
// against the same keystream.
func (c *Cipher) DecryptCTR(cipherText []byte) ([]byte, error) {
	if len(cipherText) < consts.NonceSize {
		return nil, fmt.Errorf("%w: CTR ciphertext shorter than nonce", ErrInvalidCiphertext)
	}

	nonce := cipherText[:consts.NonceSize]
	return c.coreCTR(cipherText[consts.NonceSize:], nonce, 1)
}
