package sbox

import "testing"

func TestBoxKnownValues(t *testing.T) {
	sb := Box()
	cases := map[byte]byte{
		0x00: 0x63,
		0x01: 0x7c,
		0x53: 0xed,
		0xff: 0x16,
	}
	for in, want := range cases {
		if got := sb[in]; got != want {
			t.Errorf("Box()[%#x] = %#x, want %#x", in, got, want)
		}
	}
}

func TestBoxAndInvBoxAreInverses(t *testing.T) {
	sb := Box()
	inv := InvBox()
	for i := 0; i < 256; i++ {
		if inv[sb[i]] != byte(i) {
			t.Fatalf("InvBox()[Box()[%d]] = %d, want %d", i, inv[sb[i]], i)
		}
	}
}

func TestBoxIsAPermutation(t *testing.T) {
	sb := Box()
	var seen [256]bool
	for i := 0; i < 256; i++ {
		if seen[sb[i]] {
			t.Fatalf("Box() is not a bijection: value %#x produced twice", sb[i])
		}
		seen[sb[i]] = true
	}
}
