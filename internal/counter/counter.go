// Package counter builds the 16-byte counter blocks CTR and GCM encrypt to
// produce keystream: a 12-byte nonce followed by a 32-bit big-endian block
// counter.
package counter

import (
	"encoding/binary"
	"errors"

	"github.com/tobygrice/aesp/internal/consts"
)

// ErrOverflow is returned when a requested block index would need a
// counter value beyond the 32-bit counter's range.
var ErrOverflow = errors.New("counter: block counter overflow")

// Block returns the 16-byte counter block for keystream block index i
// (0-based) under the given nonce and starting counter value start. The
// returned block is nonce || big_endian(start+i); an error is returned
// instead of a silently wrapped value if start+i would exceed 2^32-1.
func Block(nonce []byte, start uint32, i uint64) ([]byte, error) {
	if len(nonce) != consts.NonceSize {
		return nil, errors.New("counter: invalid nonce size")
	}

	val := uint64(start) + i
	if val > consts.MaxCounterBlocks {
		return nil, ErrOverflow
	}

	block := make([]byte, consts.BlockSize)
	copy(block, nonce)
	binary.BigEndian.PutUint32(block[consts.NonceSize:], uint32(val))
	return block, nil
}

// NumBlocks returns ceil(n/16) block count for an n-byte buffer.
func NumBlocks(n int) uint64 {
	return uint64((n + consts.BlockSize - 1) / consts.BlockSize)
}
