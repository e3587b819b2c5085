// Package padding implements PKCS#7 padding for ECB mode.
//
// This package's structure was inspired by CrackedPoly's AES-go padding
// helpers (https://github.com/CrackedPoly/AES-go), adapted here to return
// an error on malformed padding instead of trusting the input.
package padding

import (
	"errors"

	"github.com/tobygrice/aesp/internal/consts"
)

// ErrMalformed is returned by Unpad when the trailing PKCS#7 padding is
// not well-formed.
var ErrMalformed = errors.New("padding: malformed PKCS#7 trailer")

// Pad appends PKCS#7 padding so the result is a multiple of the block
// size. If the input is already block-aligned, a full padding block is
// still appended.
func Pad(data []byte) []byte {
	padLen := consts.BlockSize - len(data)%consts.BlockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// Unpad validates and strips PKCS#7 padding. It fails if the pad length
// byte is 0 or greater than the block size, or if any padding byte does
// not equal the pad length.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrMalformed
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > consts.BlockSize || padLen > len(data) {
		return nil, ErrMalformed
	}

	for i := len(data) - padLen; i < len(data); i++ {
		if int(data[i]) != padLen {
			return nil, ErrMalformed
		}
	}

	return data[:len(data)-padLen], nil
}
