package aesp

import (
	"encoding/binary"
	"fmt"

	"github.com/tobygrice/aesp/internal/consts"
	"github.com/tobygrice/aesp/internal/galois"
)

// maxPlaintextBytes enforces SP 800-38D's plaintext length bound,
// |P| <= 2^39-256 bits. The AAD bound the same standard sets, |A| <=
// 2^64-1 bits, is already larger than the largest length a Go byte slice
// can express, so it is unreachable in practice and needs no constant.
const maxPlaintextBytes = (1<<39 - 256) / 8

func padTo16(data []byte) []byte {
	rem := len(data) % consts.BlockSize
	if rem == 0 {
		return data
	}
	out := make([]byte, len(data)+consts.BlockSize-rem)
	copy(out, data)
	return out
}

// ghashInput assembles A ∥ 0* ∥ C ∥ 0* ∥ len(A)-in-bits ∥ len(C)-in-bits,
// each field individually zero-padded to a 16-byte multiple before the
// next begins, per SP 800-38D §7.1.
func ghashInput(aad, cipherText []byte) []byte {
	lenBlock := make([]byte, consts.BlockSize)
	binary.BigEndian.PutUint64(lenBlock[0:8], uint64(len(aad))*8)
	binary.BigEndian.PutUint64(lenBlock[8:16], uint64(len(cipherText))*8)

	paddedAAD := padTo16(aad)
	paddedCipher := padTo16(cipherText)

	out := make([]byte, 0, len(paddedAAD)+len(paddedCipher)+consts.BlockSize)
	out = append(out, paddedAAD...)
	out = append(out, paddedCipher...)
	out = append(out, lenBlock...)
	return out
}

func (c *Cipher) gmac(cipherText, aad, nonce []byte) ([]byte, error) {
	j0 := make([]byte, consts.BlockSize)
	copy(j0, nonce)
	binary.BigEndian.PutUint32(j0[consts.NonceSize:], 1)

	s := galois.Ghash(c.h[:], ghashInput(aad, cipherText))

	var j0arr, encJ0 [consts.BlockSize]byte
	copy(j0arr[:], j0)
	c.encryptBlock(&encJ0, &j0arr)

	tag := make([]byte, consts.TagSize)
	galois.XorBlocks(tag, encJ0[:], s)
	return tag, nil
}

// constantTimeEqual compares two equal-length tags without branching on
// the first differing byte: it XOR-accumulates every byte into one
// running value, then makes a single final comparison.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}

// EncryptGCM samples a fresh 12-byte nonce, encrypts plainText under a
// keystream starting at counter 2 (counter 1, J0, is reserved for the
// tag), authenticates the resulting ciphertext and the optional aad, and returns
// nonce(12) ∥ tag(16) ∥ aad_len(u32be) ∥ aad ∥ ciphertext. aad may be nil;
// a nil/empty aad encodes aad_len=0 and omits the AAD field entirely.
func (c *Cipher) EncryptGCM(plainText, aad []byte) ([]byte, error) {
	if len(plainText) > maxPlaintextBytes {
		return nil, fmt.Errorf("%w: plaintext exceeds GCM's 2^39-256 bit bound", ErrInvalidCiphertext)
	}

	nonce := make([]byte, consts.NonceSize)
	if err := fillRandom(nil, nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	cipherText, err := c.coreCTR(plainText, nonce, 2)
	if err != nil {
		return nil, err
	}

	tag, err := c.gmac(cipherText, aad, nonce)
	if err != nil {
		return nil, err
	}

	aadLen := make([]byte, 4)
	binary.BigEndian.PutUint32(aadLen, uint32(len(aad)))

	out := make([]byte, 0, consts.NonceSize+consts.TagSize+4+len(aad)+len(cipherText))
	out = append(out, nonce...)
	out = append(out, tag...)
	out = append(out, aadLen...)
	out = append(out, aad...)
	out = append(out, cipherText...)
	return out, nil
}

const gcmHeaderSize = consts.NonceSize + consts.TagSize + 4

// DecryptGCM parses the nonce/tag/aad/ciphertext framing EncryptGCM
// produces, verifies the tag in constant time, and only then decrypts
// and returns the plaintext and the recovered AAD (nil if aad_len was 0).
// On a tag mismatch no plaintext is returned, not even a zeroed buffer.
func (c *Cipher) DecryptGCM(blob []byte) ([]byte, []byte, error) {
	if len(blob) < gcmHeaderSize {
		return nil, nil, fmt.Errorf("%w: GCM blob shorter than its header", ErrInvalidCiphertext)
	}

	nonce := blob[:consts.NonceSize]
	tag := blob[consts.NonceSize : consts.NonceSize+consts.TagSize]
	aadLen := binary.BigEndian.Uint32(blob[consts.NonceSize+consts.TagSize : gcmHeaderSize])

	rest := blob[gcmHeaderSize:]
	if uint64(len(rest)) < uint64(aadLen) {
		return nil, nil, fmt.Errorf("%w: GCM blob shorter than its declared AAD length", ErrInvalidCiphertext)
	}

	var aad []byte
	if aadLen > 0 {
		aad = rest[:aadLen]
	}
	cipherText := rest[aadLen:]

	expectedTag, err := c.gmac(cipherText, aad, nonce)
	if err != nil {
		return nil, nil, err
	}

	if !constantTimeEqual(tag, expectedTag) {
		return nil, nil, ErrInvalidTag
	}

	plainText, err := c.coreCTR(cipherText, nonce, 2)
	if err != nil {
		return nil, nil, err
	}

	return plainText, aad, nil
}
