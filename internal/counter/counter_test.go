package counter

import (
	"bytes"
	"errors"
	"testing"
)

func TestBlockLayout(t *testing.T) {
	nonce := bytes.Repeat([]byte{0xaa}, 12)
	b, err := Block(nonce, 1, 0)
	if err != nil {
		t.Fatalf("Block: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("len(Block) = %d, want 16", len(b))
	}
	if !bytes.Equal(b[:12], nonce) {
		t.Errorf("nonce portion = % x, want % x", b[:12], nonce)
	}
	want := []byte{0, 0, 0, 1}
	if !bytes.Equal(b[12:], want) {
		t.Errorf("counter portion = % x, want % x", b[12:], want)
	}
}

func TestBlockIncrementsByIndex(t *testing.T) {
	nonce := make([]byte, 12)
	b, err := Block(nonce, 5, 3)
	if err != nil {
		t.Fatalf("Block: %v", err)
	}
	want := []byte{0, 0, 0, 8}
	if !bytes.Equal(b[12:], want) {
		t.Errorf("counter portion = % x, want % x", b[12:], want)
	}
}

func TestBlockRejectsWrongNonceSize(t *testing.T) {
	if _, err := Block(make([]byte, 8), 1, 0); err == nil {
		t.Fatal("Block with 8-byte nonce succeeded, want an error")
	}
}

func TestBlockOverflow(t *testing.T) {
	nonce := make([]byte, 12)
	_, err := Block(nonce, 0xffffffff, 1)
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("Block(start=2^32-1, i=1) = %v, want ErrOverflow", err)
	}
}

func TestBlockAtMaxCounterSucceeds(t *testing.T) {
	nonce := make([]byte, 12)
	_, err := Block(nonce, 0xffffffff, 0)
	if err != nil {
		t.Errorf("Block at exactly the max counter failed: %v", err)
	}
}

func TestNumBlocks(t *testing.T) {
	cases := []struct {
		n    int
		want uint64
	}{
		{0, 0},
		{1, 1},
		{15, 1},
		{16, 1},
		{17, 2},
		{32, 2},
		{33, 3},
	}
	for _, tc := range cases {
		if got := NumBlocks(tc.n); got != tc.want {
			t.Errorf("NumBlocks(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
