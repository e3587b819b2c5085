// Package keysched implements the AES key schedule (FIPS-197 §5.2): the
// expansion of a 128/192/256-bit key into the sequence of round keys the
// block cipher consumes.
//
// This package has been heavily inspired by Sam Trenholme's walkthrough:
// https://www.samiam.org/key-schedule.html
package keysched

import (
	"fmt"

	"github.com/tobygrice/aesp/internal/consts"
	"github.com/tobygrice/aesp/internal/galois"
	"github.com/tobygrice/aesp/internal/sbox"
)

// RoundKeys holds the expanded key schedule as a flat byte slice of
// length 16*(Nr+1): round r occupies RoundKeys[16*r : 16*(r+1)].
type RoundKeys []byte

func rcon(idx int) byte {
	if idx == 0 {
		return 0
	}

	var r byte = 1
	for idx > 1 {
		r = galois.Gmul(r, 2)
		idx--
	}
	return r
}

func rotWord(word [consts.WordSize]byte) [consts.WordSize]byte {
	return [consts.WordSize]byte{word[1], word[2], word[3], word[0]}
}

func subWord(word [consts.WordSize]byte, sb *sbox.SBox) [consts.WordSize]byte {
	var out [consts.WordSize]byte
	for i := range word {
		out[i] = sb[word[i]]
	}
	return out
}

// Expand runs the FIPS-197 key schedule over k (which must be exactly 16,
// 24, or 32 bytes) and returns the full round-key sequence.
func Expand(k []byte) (RoundKeys, error) {
	nk := consts.Nk(len(k))
	nr, err := consts.Nr(len(k))
	if err != nil {
		return nil, fmt.Errorf("keysched: %w", err)
	}

	totalWords, err := consts.ExpandedWords(len(k))
	if err != nil {
		return nil, err
	}

	sb := sbox.Box()
	words := make([][consts.WordSize]byte, totalWords)

	for i := 0; i < nk; i++ {
		copy(words[i][:], k[consts.WordSize*i:consts.WordSize*(i+1)])
	}

	for i := nk; i < totalWords; i++ {
		temp := words[i-1]

		switch {
		case i%nk == 0:
			temp = rotWord(temp)
			temp = subWord(temp, sb)
			temp[0] ^= rcon(i / nk)
		case nk > 6 && i%nk == 4:
			temp = subWord(temp, sb)
		}

		var next [consts.WordSize]byte
		prev := words[i-nk]
		for b := range next {
			next[b] = prev[b] ^ temp[b]
		}
		words[i] = next
	}

	out := make(RoundKeys, consts.BlockSize*(nr+1))
	for i, w := range words {
		copy(out[consts.WordSize*i:consts.WordSize*(i+1)], w[:])
	}

	return out, nil
}
