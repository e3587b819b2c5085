package aesp

import (
	"fmt"

	"github.com/tobygrice/aesp/internal/consts"
	"github.com/tobygrice/aesp/internal/galois"
	"github.com/tobygrice/aesp/internal/keysched"
	"github.com/tobygrice/aesp/internal/sbox"
)

// MixColumns/InvMixColumns multiply state bytes by the fixed GF(2^8)
// constants FIPS-197 names: {2,3} for the forward transform and
// {9,11,13,14} for its inverse.
func gmul2(a byte) byte  { return galois.Gmul(a, 0x02) }
func gmul3(a byte) byte  { return galois.Gmul(a, 0x03) }
func gmul9(a byte) byte  { return galois.Gmul(a, 0x09) }
func gmul11(a byte) byte { return galois.Gmul(a, 0x0b) }
func gmul13(a byte) byte { return galois.Gmul(a, 0x0d) }
func gmul14(a byte) byte { return galois.Gmul(a, 0x0e) }

// Cipher is an immutable AES engine derived from a Key: the expanded round
// keys plus, for GCM, the hash subkey H (the block encryption of 16 zero
// bytes). Per the design notes, H is computed once here at construction
// time rather than lazily, which is simpler and equally conformant: there
// is nothing left to race on.
type Cipher struct {
	roundKeys keysched.RoundKeys
	nr        int
	keyBits   int
	h         [consts.BlockSize]byte
}

// NewCipher derives a Cipher from key. Key already guarantees a valid
// byte length, so schedule expansion cannot fail in practice; the error
// path exists only to keep keysched.Expand's contract honest.
func NewCipher(key *Key) *Cipher {
	rk, err := keysched.Expand(key.Bytes())
	if err != nil {
		panic(fmt.Sprintf("aesp: key schedule failed for a validated key: %v", err))
	}

	nr := len(rk)/consts.BlockSize - 1

	c := &Cipher{roundKeys: rk, nr: nr, keyBits: key.Bits()}

	var zero, h [consts.BlockSize]byte
	c.encryptBlock(&h, &zero)
	c.h = h

	return c
}

// KeyBits reports the key size (128, 192, or 256) this Cipher was derived
// from.
func (c *Cipher) KeyBits() int {
	return c.keyBits
}

// Zero overwrites the round-key schedule and cached hash subkey with
// zeroes. Round keys are as sensitive as the key they were derived from
// (Data Model §3), so a caller done with a Cipher can wipe it the same
// way the teacher's ClearKey wiped the raw key and expanded key.
func (c *Cipher) Zero() {
	for i := range c.roundKeys {
		c.roundKeys[i] = 0
	}
	for i := range c.h {
		c.h[i] = 0
	}
}

func (c *Cipher) roundKey(round int) []byte {
	return c.roundKeys[consts.BlockSize*round : consts.BlockSize*(round+1)]
}

func addRoundKey(state *[consts.BlockSize]byte, rk []byte) {
	for i := range state {
		state[i] ^= rk[i]
	}
}

func subBytes(state *[consts.BlockSize]byte, sb *sbox.SBox) {
	for i := range state {
		state[i] = sb[state[i]]
	}
}

// shiftRows cyclically left-rotates row r (0..3) of the column-major state
// by r positions: byte (r, c) at linear index 4*c+r moves to column
// (c-r) mod 4.
func shiftRows(state *[consts.BlockSize]byte) {
	var out [consts.BlockSize]byte
	for r := 1; r < 4; r++ {
		for col := 0; col < 4; col++ {
			out[4*col+r] = state[4*((col+r)%4)+r]
		}
	}
	for r := 1; r < 4; r++ {
		for col := 0; col < 4; col++ {
			state[4*col+r] = out[4*col+r]
		}
	}
}

func invShiftRows(state *[consts.BlockSize]byte) {
	var out [consts.BlockSize]byte
	for r := 1; r < 4; r++ {
		for col := 0; col < 4; col++ {
			out[4*col+r] = state[4*((col-r+4)%4)+r]
		}
	}
	for r := 1; r < 4; r++ {
		for col := 0; col < 4; col++ {
			state[4*col+r] = out[4*col+r]
		}
	}
}

func mixColumns(state *[consts.BlockSize]byte) {
	for i := 0; i < 4; i++ {
		a0, a1, a2, a3 := state[4*i+0], state[4*i+1], state[4*i+2], state[4*i+3]
		state[4*i+0] = gmul2(a0) ^ gmul3(a1) ^ a2 ^ a3
		state[4*i+1] = a0 ^ gmul2(a1) ^ gmul3(a2) ^ a3
		state[4*i+2] = a0 ^ a1 ^ gmul2(a2) ^ gmul3(a3)
		state[4*i+3] = gmul3(a0) ^ a1 ^ a2 ^ gmul2(a3)
	}
}

func invMixColumns(state *[consts.BlockSize]byte) {
	for i := 0; i < 4; i++ {
		a0, a1, a2, a3 := state[4*i+0], state[4*i+1], state[4*i+2], state[4*i+3]
		state[4*i+0] = gmul14(a0) ^ gmul11(a1) ^ gmul13(a2) ^ gmul9(a3)
		state[4*i+1] = gmul9(a0) ^ gmul14(a1) ^ gmul11(a2) ^ gmul13(a3)
		state[4*i+2] = gmul13(a0) ^ gmul9(a1) ^ gmul14(a2) ^ gmul11(a3)
		state[4*i+3] = gmul11(a0) ^ gmul13(a1) ^ gmul9(a2) ^ gmul14(a3)
	}
}

// encryptBlock performs AddRoundKey(0), Nr-1 full rounds, and a final
// round without MixColumns, writing the result into dst. src and dst may
// alias.
func (c *Cipher) encryptBlock(dst, src *[consts.BlockSize]byte) {
	sb := sbox.Box()
	state := *src

	addRoundKey(&state, c.roundKey(0))

	for round := 1; round < c.nr; round++ {
		subBytes(&state, sb)
		shiftRows(&state)
		mixColumns(&state)
		addRoundKey(&state, c.roundKey(round))
	}

	subBytes(&state, sb)
	shiftRows(&state)
	addRoundKey(&state, c.roundKey(c.nr))

	*dst = state
}

// decryptBlock runs the inverse sequence with round keys consumed in
// reverse order.
func (c *Cipher) decryptBlock(dst, src *[consts.BlockSize]byte) {
	invSb := sbox.InvBox()
	state := *src

	addRoundKey(&state, c.roundKey(c.nr))

	for round := c.nr - 1; round > 0; round-- {
		invShiftRows(&state)
		subBytes(&state, invSb)
		addRoundKey(&state, c.roundKey(round))
		invMixColumns(&state)
	}

	invShiftRows(&state)
	subBytes(&state, invSb)
	addRoundKey(&state, c.roundKey(0))

	*dst = state
}

// EncryptBlock encrypts exactly one 16-byte block.
func (c *Cipher) EncryptBlock(block []byte) ([]byte, error) {
	if len(block) != consts.BlockSize {
		return nil, fmt.Errorf("%w: block must be %d bytes", ErrInvalidCiphertext, consts.BlockSize)
	}
	var src, dst [consts.BlockSize]byte
	copy(src[:], block)
	c.encryptBlock(&dst, &src)
	out := make([]byte, consts.BlockSize)
	copy(out, dst[:])
	return out, nil
}

// DecryptBlock decrypts exactly one 16-byte block.
func (c *Cipher) DecryptBlock(block []byte) ([]byte, error) {
	if len(block) != consts.BlockSize {
		return nil, fmt.Errorf("%w: block must be %d bytes", ErrInvalidCiphertext, consts.BlockSize)
	}
	var src, dst [consts.BlockSize]byte
	copy(src[:], block)
	c.decryptBlock(&dst, &src)
	out := make([]byte, consts.BlockSize)
	copy(out, dst[:])
	return out, nil
}
