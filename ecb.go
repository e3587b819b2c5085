package aesp

import (
	"fmt"

	"github.com/tobygrice/aesp/internal/consts"
	"github.com/tobygrice/aesp/internal/padding"
	"github.com/tobygrice/aesp/internal/parallel"
)

// EncryptECB PKCS#7-pads plainText to a block boundary (appending a full
// padding block if it is already aligned) and encrypts each block
// independently. ECB's blocks are independent in both directions, so this
// is handed straight to the parallel driver.
func (c *Cipher) EncryptECB(plainText []byte) []byte {
	padded := padding.Pad(plainText)
	out := make([]byte, len(padded))
	nblocks := uint64(len(padded)) / consts.BlockSize

	_ = parallel.Run(nblocks, 0, func(i uint64) error {
		off := int(i) * consts.BlockSize
		var src, dst [consts.BlockSize]byte
		copy(src[:], padded[off:off+consts.BlockSize])
		c.encryptBlock(&dst, &src)
		copy(out[off:off+consts.BlockSize], dst[:])
		return nil
	})

	return out
}

// DecryptECB decrypts each block of cipherText independently and strips
// the PKCS#7 padding from the result.
func (c *Cipher) DecryptECB(cipherText []byte) ([]byte, error) {
	if len(cipherText) == 0 || len(cipherText)%consts.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ECB ciphertext must be a non-zero multiple of %d bytes", ErrInvalidCiphertext, consts.BlockSize)
	}

	padded := make([]byte, len(cipherText))
	nblocks := uint64(len(cipherText)) / consts.BlockSize

	err := parallel.Run(nblocks, 0, func(i uint64) error {
		off := int(i) * consts.BlockSize
		var src, dst [consts.BlockSize]byte
		copy(src[:], cipherText[off:off+consts.BlockSize])
		c.decryptBlock(&dst, &src)
		copy(padded[off:off+consts.BlockSize], dst[:])
		return nil
	})
	if err != nil {
		return nil, err
	}

	plain, err := padding.Unpad(padded)
	if err != nil {
		return nil, fmt.Errorf("%w", ErrInvalidPadding)
	}
	return plain, nil
}
